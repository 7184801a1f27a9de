package storage

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/terrancemacgregor/wtmd-playlist-tracker/utils"
)

// MemoryStore keeps the archive in process memory. Deployments with an
// ephemeral filesystem run this backend and lose the archive on every
// restart; the scheduler refills it from the station page.
type MemoryStore struct {
	mu     sync.Mutex
	songs  []Song
	seen   map[string]struct{}
	nextID int64
}

func NewMemoryStore() *MemoryStore {
	utils.Logger.Warn("Using in-memory storage: song history will not survive a restart")
	return &MemoryStore{
		seen:   make(map[string]struct{}),
		nextID: 1,
	}
}

func (s *MemoryStore) Init() error { return nil }

func dedupKey(song *Song) string {
	return fmt.Sprintf("%s|%s|%d", song.Artist, song.Title, song.PlayedAt.Unix())
}

func (s *MemoryStore) InsertSong(song *Song) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := dedupKey(song)
	if _, exists := s.seen[key]; exists {
		return false, nil
	}
	s.seen[key] = struct{}{}

	stored := *song
	stored.ID = s.nextID
	stored.CreatedAt = time.Now()
	s.nextID++
	s.songs = append(s.songs, stored)
	return true, nil
}

func (s *MemoryStore) RecentSongs(limit int) ([]Song, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sorted := make([]Song, len(s.songs))
	copy(sorted, s.songs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].PlayedAt.After(sorted[j].PlayedAt)
	})
	if limit > 0 && len(sorted) > limit {
		sorted = sorted[:limit]
	}
	return sorted, nil
}

func (s *MemoryStore) TopSongs(days, limit int) ([]TopSong, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := time.Now().AddDate(0, 0, -days)
	counts := make(map[string]int)
	var order []TopSong // insertion order preserves first-encountered ties
	for _, song := range s.songs {
		if !song.PlayedAt.After(cutoff) {
			continue
		}
		key := song.Artist + "\x00" + song.Title
		if _, seen := counts[key]; !seen {
			order = append(order, TopSong{Artist: song.Artist, Title: song.Title})
		}
		counts[key]++
	}
	for i := range order {
		order[i].PlayCount = counts[order[i].Artist+"\x00"+order[i].Title]
	}
	sort.SliceStable(order, func(i, j int) bool {
		return order[i].PlayCount > order[j].PlayCount
	})
	if limit > 0 && len(order) > limit {
		order = order[:limit]
	}
	return order, nil
}

func (s *MemoryStore) SongsByDJ(djName string, limit int) ([]Song, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var matched []Song
	for _, song := range s.songs {
		if song.DJName == djName {
			matched = append(matched, song)
		}
	}
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].PlayedAt.After(matched[j].PlayedAt)
	})
	if limit > 0 && len(matched) > limit {
		matched = matched[:limit]
	}
	return matched, nil
}

func (s *MemoryStore) TopArtistsByDJ(djName string, limit int) ([]ArtistCount, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	counts := make(map[string]int)
	var order []ArtistCount
	for _, song := range s.songs {
		if song.DJName != djName {
			continue
		}
		if _, seen := counts[song.Artist]; !seen {
			order = append(order, ArtistCount{Artist: song.Artist})
		}
		counts[song.Artist]++
	}
	for i := range order {
		order[i].PlayCount = counts[order[i].Artist]
	}
	sort.SliceStable(order, func(i, j int) bool {
		return order[i].PlayCount > order[j].PlayCount
	})
	if limit > 0 && len(order) > limit {
		order = order[:limit]
	}
	return order, nil
}

func (s *MemoryStore) DJStats() ([]DJStat, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	type acc struct {
		total   int
		artists map[string]struct{}
		days    map[string]struct{}
		last    time.Time
	}
	accs := make(map[string]*acc)
	var names []string
	for _, song := range s.songs {
		if song.DJName == "" {
			continue
		}
		a, ok := accs[song.DJName]
		if !ok {
			a = &acc{artists: make(map[string]struct{}), days: make(map[string]struct{})}
			accs[song.DJName] = a
			names = append(names, song.DJName)
		}
		a.total++
		a.artists[song.Artist] = struct{}{}
		a.days[song.PlayedAt.Format("2006-01-02")] = struct{}{}
		if song.PlayedAt.After(a.last) {
			a.last = song.PlayedAt
		}
	}

	stats := make([]DJStat, 0, len(names))
	for _, name := range names {
		a := accs[name]
		stats = append(stats, DJStat{
			DJName:        name,
			TotalSongs:    a.total,
			UniqueArtists: len(a.artists),
			DaysActive:    len(a.days),
			LastActive:    a.last,
		})
	}
	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].TotalSongs > stats[j].TotalSongs
	})
	return stats, nil
}

func (s *MemoryStore) OverviewStats() (*Overview, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	artists := make(map[string]struct{})
	djs := make(map[string]struct{})
	var last time.Time
	for _, song := range s.songs {
		artists[song.Artist] = struct{}{}
		if song.DJName != "" {
			djs[song.DJName] = struct{}{}
		}
		if song.CreatedAt.After(last) {
			last = song.CreatedAt
		}
	}

	overview := &Overview{
		TotalSongs:    len(s.songs),
		UniqueArtists: len(artists),
		TotalDJs:      len(djs),
	}
	if !last.IsZero() {
		overview.LastUpdate = &last
	}
	return overview, nil
}

func (s *MemoryStore) SearchSongs(query string) ([]Song, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	needle := strings.ToLower(query)
	var matched []Song
	for _, song := range s.songs {
		if strings.Contains(strings.ToLower(song.Artist), needle) ||
			strings.Contains(strings.ToLower(song.Title), needle) ||
			strings.Contains(strings.ToLower(song.Album), needle) {
			matched = append(matched, song)
		}
	}
	return matched, nil
}

func (s *MemoryStore) SongCount() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.songs), nil
}

func (s *MemoryStore) Ping() error  { return nil }
func (s *MemoryStore) Close() error { return nil }
