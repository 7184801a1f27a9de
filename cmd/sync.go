package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/terrancemacgregor/wtmd-playlist-tracker/config"
)

func init() {
	rootCmd.AddCommand(syncCmd)
}

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Run one sync cycle against the playlist page",
	Run: func(cmd *cobra.Command, args []string) {
		executeSync()
	},
}

func executeSync() {
	cfg := config.Load()
	store := newStore(cfg)
	defer store.Close()

	coordinator := newCoordinator(cfg, store, nil)
	result, err := coordinator.RunSync(context.Background())
	if err != nil {
		logger.Fatalf("Error syncing playlist: %v", err)
	}
	fmt.Printf("Synced playlist: %d parsed, %d new, %d skipped\n", result.Total, result.New, result.Skipped)
}
