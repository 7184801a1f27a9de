package cmd

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/terrancemacgregor/wtmd-playlist-tracker/config"
	"github.com/terrancemacgregor/wtmd-playlist-tracker/ingest"
	"github.com/terrancemacgregor/wtmd-playlist-tracker/metrics"
	"github.com/terrancemacgregor/wtmd-playlist-tracker/scraper"
	"github.com/terrancemacgregor/wtmd-playlist-tracker/storage"
	"github.com/terrancemacgregor/wtmd-playlist-tracker/utils"
)

var logger = utils.Logger

var rootCmd = &cobra.Command{
	Use:   "wtmd-tracker",
	Short: "wtmd-tracker scrapes the WTMD playlist page and tracks played songs.",
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("storage", "", "Storage type: memory, sqlite, or postgres")
	rootCmd.PersistentFlags().String("storage-path", "", "Path to database file or connection string")
	rootCmd.PersistentFlags().String("playlist-url", "", "Playlist page URL to scrape")
	rootCmd.PersistentFlags().String("loglevel", "", "Logging level: debug, info, warn, error, fatal")

	viper.BindPFlag("storage", rootCmd.PersistentFlags().Lookup("storage"))
	viper.BindPFlag("storage_path", rootCmd.PersistentFlags().Lookup("storage-path"))
	viper.BindPFlag("playlist_url", rootCmd.PersistentFlags().Lookup("playlist-url"))
	viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("loglevel"))

	viper.SetEnvPrefix("WTMD")
	viper.AutomaticEnv()
}

func initConfig() {
	// .env is optional; environment variables and flags still apply.
	if err := godotenv.Load(); err == nil {
		logger.Debug("Loaded environment from .env")
	}

	config.SetDefaults()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	if err := viper.ReadInConfig(); err != nil {
		logger.Debugf("No config file found, using environment variables and defaults: %v", err)
	}

	utils.SetLevel(viper.GetString("log_level"))
}

// newStore opens and initializes the configured storage backend.
func newStore(cfg *config.Config) storage.Store {
	store, err := storage.NewStore(cfg.StorageType, cfg.StoragePath)
	if err != nil {
		logger.Fatalf("Error initializing storage: %v", err)
	}
	if err := store.Init(); err != nil {
		logger.Fatalf("Error initializing storage: %v", err)
	}
	logger.Infof("Using storage type: %s, path: %s", cfg.StorageType, cfg.StoragePath)
	return store
}

func newCoordinator(cfg *config.Config, store storage.Store, collector *metrics.Collector) *ingest.Coordinator {
	fetcher := scraper.NewFetcher(cfg.PlaylistURL, cfg.FetchTimeout)
	return ingest.NewCoordinator(fetcher, scraper.NewParser(), store, collector)
}
