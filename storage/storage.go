// Package storage persists song plays and serves the query surface the
// API exposes. Backends are interchangeable behind the Store interface;
// the deployment environment picks one at startup.
package storage

import (
	"fmt"
	"time"
)

// Song is one persisted play. The (Artist, Title, PlayedAt) triple is
// unique in every backend: re-inserting it is a no-op, not an error.
type Song struct {
	ID        int64     `json:"id"`
	Artist    string    `json:"artist"`
	Title     string    `json:"title"`
	Album     string    `json:"album,omitempty"`
	PlayedAt  time.Time `json:"played_at"`
	DJName    string    `json:"dj_name,omitempty"`
	ShowName  string    `json:"show_name,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// TopSong is a (artist, title) pair ranked by plays within a window.
type TopSong struct {
	Artist    string `json:"artist"`
	Title     string `json:"title"`
	PlayCount int    `json:"play_count"`
}

// ArtistCount ranks an artist by plays, scoped to one DJ.
type ArtistCount struct {
	Artist    string `json:"artist"`
	PlayCount int    `json:"play_count"`
}

// DJStat aggregates one DJ's airplay history.
type DJStat struct {
	DJName        string    `json:"dj_name"`
	TotalSongs    int       `json:"total_songs"`
	UniqueArtists int       `json:"unique_artists"`
	DaysActive    int       `json:"days_active"`
	LastActive    time.Time `json:"last_active"`
}

// Overview summarizes the whole archive.
type Overview struct {
	TotalSongs    int        `json:"total_songs"`
	UniqueArtists int        `json:"unique_artists"`
	TotalDJs      int        `json:"total_djs"`
	LastUpdate    *time.Time `json:"last_update,omitempty"`
}

// Store is the storage contract shared by all backends.
type Store interface {
	Init() error
	// InsertSong persists the song unless its (artist, title, played_at)
	// triple already exists. Returns whether a row was actually added.
	InsertSong(song *Song) (bool, error)
	RecentSongs(limit int) ([]Song, error)
	TopSongs(days, limit int) ([]TopSong, error)
	SongsByDJ(djName string, limit int) ([]Song, error)
	TopArtistsByDJ(djName string, limit int) ([]ArtistCount, error)
	DJStats() ([]DJStat, error)
	OverviewStats() (*Overview, error)
	SearchSongs(query string) ([]Song, error)
	SongCount() (int, error)
	Ping() error
	Close() error
}

// NewStore selects a backend once at process start. storagePath is a
// file path for sqlite and a connection string for postgres.
func NewStore(storageType, storagePath string) (Store, error) {
	switch storageType {
	case "memory":
		return NewMemoryStore(), nil
	case "sqlite":
		return NewSQLiteStore(storagePath)
	case "postgres":
		return NewPostgresStore(storagePath)
	default:
		return nil, fmt.Errorf("unknown storage type: %s", storageType)
	}
}
