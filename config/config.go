// Package config resolves runtime settings from flags, environment
// variables (WTMD_ prefix), and an optional config file, via viper.
package config

import (
	"time"

	"github.com/spf13/viper"
)

const (
	// DefaultPlaylistURL is the station's recently-played page. The
	// URL is configuration, not a contract: its markup may change.
	DefaultPlaylistURL = "https://wtmdradio.org/playlist/dynamic/RecentSongs.html"

	DefaultSyncInterval = 5 * time.Minute
	DefaultFetchTimeout = 10 * time.Second
)

type Config struct {
	PlaylistURL  string
	StorageType  string
	StoragePath  string
	SyncInterval time.Duration
	FetchTimeout time.Duration
	HTTPAddr     string
	LogLevel     string
}

// SetDefaults registers fallback values on the shared viper instance.
// cmd binds flags over these; environment variables win over both.
func SetDefaults() {
	viper.SetDefault("playlist_url", DefaultPlaylistURL)
	viper.SetDefault("storage", "sqlite")
	viper.SetDefault("storage_path", "data/wtmd.db")
	viper.SetDefault("sync_interval", DefaultSyncInterval)
	viper.SetDefault("fetch_timeout", DefaultFetchTimeout)
	viper.SetDefault("http_addr", ":8080")
	viper.SetDefault("log_level", "info")
}

// Load materializes the resolved configuration.
func Load() *Config {
	return &Config{
		PlaylistURL:  viper.GetString("playlist_url"),
		StorageType:  viper.GetString("storage"),
		StoragePath:  viper.GetString("storage_path"),
		SyncInterval: viper.GetDuration("sync_interval"),
		FetchTimeout: viper.GetDuration("fetch_timeout"),
		HTTPAddr:     viper.GetString("http_addr"),
		LogLevel:     viper.GetString("log_level"),
	}
}
