package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/terrancemacgregor/wtmd-playlist-tracker/config"
	"github.com/terrancemacgregor/wtmd-playlist-tracker/scraper"
)

func init() {
	rootCmd.AddCommand(fetchCmd)
}

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Fetch and parse the playlist page without storing anything",
	Run: func(cmd *cobra.Command, args []string) {
		executeFetch()
	},
}

func executeFetch() {
	cfg := config.Load()
	fetcher := scraper.NewFetcher(cfg.PlaylistURL, cfg.FetchTimeout)

	markup, err := fetcher.Fetch(context.Background())
	if err != nil {
		logger.Fatalf("Error fetching playlist page: %v", err)
	}

	candidates := scraper.NewParser().Parse(markup, time.Now())
	for _, c := range candidates {
		fmt.Printf("%s %s  %s - %s\n", c.Date, c.Time, c.Artist, c.Title)
	}
	logger.Infof("Parsed %d candidates from %s", len(candidates), cfg.PlaylistURL)
}
