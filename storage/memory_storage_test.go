package storage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func song(artist, title, dj string, playedAt time.Time) *Song {
	return &Song{Artist: artist, Title: title, DJName: dj, ShowName: dj, PlayedAt: playedAt}
}

func TestMemoryInsertDeduplicates(t *testing.T) {
	store := NewMemoryStore()
	playedAt := time.Date(2024, time.March, 4, 8, 15, 0, 0, time.UTC)

	inserted, err := store.InsertSong(song("A", "B", "", playedAt))
	require.NoError(t, err)
	assert.True(t, inserted)

	inserted, err = store.InsertSong(song("A", "B", "", playedAt))
	require.NoError(t, err)
	assert.False(t, inserted)

	count, err := store.SongCount()
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	// Same pair at a different time is a distinct play.
	inserted, err = store.InsertSong(song("A", "B", "", playedAt.Add(time.Hour)))
	require.NoError(t, err)
	assert.True(t, inserted)
}

func TestMemoryRecentSongsOrdering(t *testing.T) {
	store := NewMemoryStore()
	base := time.Date(2024, time.March, 4, 8, 0, 0, 0, time.UTC)

	store.InsertSong(song("First", "Song", "", base))
	store.InsertSong(song("Third", "Song", "", base.Add(2*time.Hour)))
	store.InsertSong(song("Second", "Song", "", base.Add(time.Hour)))

	recent, err := store.RecentSongs(10)
	require.NoError(t, err)
	require.Len(t, recent, 3)
	for i := 1; i < len(recent); i++ {
		assert.False(t, recent[i].PlayedAt.After(recent[i-1].PlayedAt))
	}
	assert.Equal(t, "Third", recent[0].Artist)

	limited, err := store.RecentSongs(2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}

func TestMemoryTopSongsWindowAndTies(t *testing.T) {
	store := NewMemoryStore()
	now := time.Now()

	for i := 0; i < 3; i++ {
		store.InsertSong(song("Pearl Jam", "Alive", "", now.Add(-time.Duration(i)*time.Hour)))
	}
	for i := 0; i < 2; i++ {
		store.InsertSong(song("Beck", "Loser", "", now.Add(-time.Duration(i)*24*time.Hour)))
	}
	store.InsertSong(song("Nirvana", "Lithium", "", now.Add(-time.Hour)))
	// Outside the 7-day window.
	store.InsertSong(song("Old", "Track", "", now.AddDate(0, 0, -10)))

	top, err := store.TopSongs(7, 10)
	require.NoError(t, err)
	require.Len(t, top, 3)
	assert.Equal(t, TopSong{"Pearl Jam", "Alive", 3}, top[0])
	assert.Equal(t, TopSong{"Beck", "Loser", 2}, top[1])
	assert.Equal(t, TopSong{"Nirvana", "Lithium", 1}, top[2])
}

func TestMemoryDJStats(t *testing.T) {
	store := NewMemoryStore()
	day1 := time.Date(2024, time.March, 4, 8, 0, 0, 0, time.UTC)
	day2 := day1.AddDate(0, 0, 1)
	day3 := day1.AddDate(0, 0, 2)

	store.InsertSong(song("Pearl Jam", "Alive", "Alex Cortright", day1))
	store.InsertSong(song("Pearl Jam", "Black", "Alex Cortright", day2))
	store.InsertSong(song("Beck", "Loser", "Alex Cortright", day3))
	store.InsertSong(song("Nirvana", "Lithium", "Megan Byrd", day2))
	store.InsertSong(song("Unattributed", "Song", "", day1))

	stats, err := store.DJStats()
	require.NoError(t, err)
	require.Len(t, stats, 2)

	assert.Equal(t, "Alex Cortright", stats[0].DJName)
	assert.Equal(t, 3, stats[0].TotalSongs)
	assert.Equal(t, 2, stats[0].UniqueArtists)
	assert.Equal(t, 3, stats[0].DaysActive)
	assert.Equal(t, day3, stats[0].LastActive)

	assert.Equal(t, "Megan Byrd", stats[1].DJName)
	assert.Equal(t, 1, stats[1].DaysActive)
	assert.Equal(t, day2, stats[1].LastActive)
}

func TestMemorySongsByDJAndTopArtists(t *testing.T) {
	store := NewMemoryStore()
	base := time.Date(2024, time.March, 4, 8, 0, 0, 0, time.UTC)

	store.InsertSong(song("Pearl Jam", "Alive", "Alex Cortright", base))
	store.InsertSong(song("Pearl Jam", "Black", "Alex Cortright", base.Add(time.Hour)))
	store.InsertSong(song("Beck", "Loser", "Alex Cortright", base.Add(2*time.Hour)))
	store.InsertSong(song("Nirvana", "Lithium", "Megan Byrd", base))

	songs, err := store.SongsByDJ("Alex Cortright", 10)
	require.NoError(t, err)
	require.Len(t, songs, 3)
	assert.Equal(t, "Loser", songs[0].Title)

	artists, err := store.TopArtistsByDJ("Alex Cortright", 10)
	require.NoError(t, err)
	require.Len(t, artists, 2)
	assert.Equal(t, ArtistCount{"Pearl Jam", 2}, artists[0])
	assert.Equal(t, ArtistCount{"Beck", 1}, artists[1])
}

func TestMemorySearchSongs(t *testing.T) {
	store := NewMemoryStore()
	base := time.Date(2024, time.March, 4, 8, 0, 0, 0, time.UTC)

	store.InsertSong(&Song{Artist: "Pearl Jam", Title: "Alive", Album: "Ten", PlayedAt: base})
	store.InsertSong(&Song{Artist: "Beck", Title: "Loser", Album: "Mellow Gold", PlayedAt: base.Add(time.Hour)})

	byArtist, err := store.SearchSongs("pearl")
	require.NoError(t, err)
	assert.Len(t, byArtist, 1)

	byAlbum, err := store.SearchSongs("GOLD")
	require.NoError(t, err)
	assert.Len(t, byAlbum, 1)
	assert.Equal(t, "Beck", byAlbum[0].Artist)

	none, err := store.SearchSongs("zeppelin")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestMemoryOverviewStats(t *testing.T) {
	store := NewMemoryStore()

	empty, err := store.OverviewStats()
	require.NoError(t, err)
	assert.Equal(t, 0, empty.TotalSongs)
	assert.Nil(t, empty.LastUpdate)

	base := time.Date(2024, time.March, 4, 8, 0, 0, 0, time.UTC)
	store.InsertSong(song("Pearl Jam", "Alive", "Alex Cortright", base))
	store.InsertSong(song("Pearl Jam", "Black", "Alex Cortright", base.Add(time.Hour)))
	store.InsertSong(song("Beck", "Loser", "Megan Byrd", base.Add(2*time.Hour)))

	overview, err := store.OverviewStats()
	require.NoError(t, err)
	assert.Equal(t, 3, overview.TotalSongs)
	assert.Equal(t, 2, overview.UniqueArtists)
	assert.Equal(t, 2, overview.TotalDJs)
	require.NotNil(t, overview.LastUpdate)
}
