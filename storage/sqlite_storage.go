package storage

import (
	"database/sql"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"

	"github.com/terrancemacgregor/wtmd-playlist-tracker/utils"
)

// SQLiteStore is the durable backend. Timestamps are stored as RFC3339
// UTC text so lexicographic comparison matches chronological order.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}
	utils.Logger.Debugf("Opened SQLite database at %s", dbPath)
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Init() error {
	_, err := s.db.Exec(`
	CREATE TABLE IF NOT EXISTS songs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		artist TEXT NOT NULL,
		title TEXT NOT NULL,
		album TEXT,
		played_at TEXT NOT NULL,
		dj_name TEXT,
		show_name TEXT,
		created_at TEXT NOT NULL,
		UNIQUE(artist, title, played_at)
	);
	CREATE INDEX IF NOT EXISTS idx_songs_played_at ON songs(played_at);
	CREATE INDEX IF NOT EXISTS idx_songs_artist ON songs(artist);
	CREATE INDEX IF NOT EXISTS idx_songs_dj ON songs(dj_name);
	`)
	return err
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func (s *SQLiteStore) InsertSong(song *Song) (bool, error) {
	res, err := s.db.Exec(
		`INSERT OR IGNORE INTO songs (artist, title, album, played_at, dj_name, show_name, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		song.Artist, song.Title, song.Album, formatTime(song.PlayedAt),
		song.DJName, song.ShowName, formatTime(time.Now()),
	)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

const songColumns = `id, artist, title, COALESCE(album, ''), played_at, COALESCE(dj_name, ''), COALESCE(show_name, ''), created_at`

func scanSongs(rows *sql.Rows) ([]Song, error) {
	defer rows.Close()

	var songs []Song
	for rows.Next() {
		var song Song
		var playedAt, createdAt string
		if err := rows.Scan(&song.ID, &song.Artist, &song.Title, &song.Album,
			&playedAt, &song.DJName, &song.ShowName, &createdAt); err != nil {
			return nil, err
		}
		var err error
		if song.PlayedAt, err = time.Parse(time.RFC3339, playedAt); err != nil {
			return nil, err
		}
		if song.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
			return nil, err
		}
		songs = append(songs, song)
	}
	return songs, rows.Err()
}

func (s *SQLiteStore) RecentSongs(limit int) ([]Song, error) {
	rows, err := s.db.Query(
		`SELECT `+songColumns+` FROM songs ORDER BY played_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	return scanSongs(rows)
}

func (s *SQLiteStore) TopSongs(days, limit int) ([]TopSong, error) {
	cutoff := formatTime(time.Now().AddDate(0, 0, -days))
	rows, err := s.db.Query(
		`SELECT artist, title, COUNT(*) AS play_count
		 FROM songs
		 WHERE played_at > ?
		 GROUP BY artist, title
		 ORDER BY play_count DESC, MIN(id) ASC
		 LIMIT ?`, cutoff, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var top []TopSong
	for rows.Next() {
		var t TopSong
		if err := rows.Scan(&t.Artist, &t.Title, &t.PlayCount); err != nil {
			return nil, err
		}
		top = append(top, t)
	}
	return top, rows.Err()
}

func (s *SQLiteStore) SongsByDJ(djName string, limit int) ([]Song, error) {
	rows, err := s.db.Query(
		`SELECT `+songColumns+` FROM songs WHERE dj_name = ? ORDER BY played_at DESC LIMIT ?`,
		djName, limit)
	if err != nil {
		return nil, err
	}
	return scanSongs(rows)
}

func (s *SQLiteStore) TopArtistsByDJ(djName string, limit int) ([]ArtistCount, error) {
	rows, err := s.db.Query(
		`SELECT artist, COUNT(*) AS play_count
		 FROM songs
		 WHERE dj_name = ?
		 GROUP BY artist
		 ORDER BY play_count DESC, MIN(id) ASC
		 LIMIT ?`, djName, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var artists []ArtistCount
	for rows.Next() {
		var a ArtistCount
		if err := rows.Scan(&a.Artist, &a.PlayCount); err != nil {
			return nil, err
		}
		artists = append(artists, a)
	}
	return artists, rows.Err()
}

func (s *SQLiteStore) DJStats() ([]DJStat, error) {
	rows, err := s.db.Query(
		`SELECT dj_name,
		        COUNT(*) AS total_songs,
		        COUNT(DISTINCT artist) AS unique_artists,
		        COUNT(DISTINCT DATE(played_at)) AS days_active,
		        MAX(played_at) AS last_active
		 FROM songs
		 WHERE dj_name IS NOT NULL AND dj_name != ''
		 GROUP BY dj_name
		 ORDER BY total_songs DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stats []DJStat
	for rows.Next() {
		var stat DJStat
		var lastActive string
		if err := rows.Scan(&stat.DJName, &stat.TotalSongs, &stat.UniqueArtists,
			&stat.DaysActive, &lastActive); err != nil {
			return nil, err
		}
		if stat.LastActive, err = time.Parse(time.RFC3339, lastActive); err != nil {
			return nil, err
		}
		stats = append(stats, stat)
	}
	return stats, rows.Err()
}

func (s *SQLiteStore) OverviewStats() (*Overview, error) {
	overview := &Overview{}
	var lastUpdate sql.NullString
	err := s.db.QueryRow(
		`SELECT COUNT(*),
		        COUNT(DISTINCT artist),
		        COUNT(DISTINCT NULLIF(dj_name, '')),
		        MAX(created_at)
		 FROM songs`).
		Scan(&overview.TotalSongs, &overview.UniqueArtists, &overview.TotalDJs, &lastUpdate)
	if err != nil {
		return nil, err
	}
	if lastUpdate.Valid {
		t, err := time.Parse(time.RFC3339, lastUpdate.String)
		if err != nil {
			return nil, err
		}
		overview.LastUpdate = &t
	}
	return overview, nil
}

func (s *SQLiteStore) SearchSongs(query string) ([]Song, error) {
	pattern := "%" + strings.ToLower(query) + "%"
	rows, err := s.db.Query(
		`SELECT `+songColumns+` FROM songs
		 WHERE LOWER(artist) LIKE ? OR LOWER(title) LIKE ? OR LOWER(COALESCE(album, '')) LIKE ?
		 ORDER BY played_at DESC`,
		pattern, pattern, pattern)
	if err != nil {
		return nil, err
	}
	return scanSongs(rows)
}

func (s *SQLiteStore) SongCount() (int, error) {
	var count int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM songs`).Scan(&count)
	return count, err
}

func (s *SQLiteStore) Ping() error  { return s.db.Ping() }
func (s *SQLiteStore) Close() error { return s.db.Close() }
