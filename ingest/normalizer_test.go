package ingest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/terrancemacgregor/wtmd-playlist-tracker/scraper"
)

// A Monday, so weekday bands apply.
var monday = time.Date(2024, time.March, 4, 12, 0, 0, 0, time.Local)

func TestNormalizeValidCandidate(t *testing.T) {
	song, reason := Normalize(scraper.CandidateSong{
		Date:   "03/04",
		Time:   "08:15",
		Artist: "Pearl Jam",
		Title:  "Alive",
		Album:  "Ten",
	}, monday)

	require.Equal(t, DiscardNone, reason)
	require.NotNil(t, song)
	assert.Equal(t, "Pearl Jam", song.Artist)
	assert.Equal(t, "Alive", song.Title)
	assert.Equal(t, "Ten", song.Album)
	assert.Equal(t, time.Date(2024, time.March, 4, 8, 15, 0, 0, time.Local), song.PlayedAt)
	assert.Equal(t, "Alex Cortright", song.DJName)
	assert.Equal(t, "Morning Show", song.ShowName)
}

func TestNormalizeDiscards(t *testing.T) {
	tests := []struct {
		name      string
		candidate scraper.CandidateSong
		want      DiscardReason
	}{
		{"missing artist", scraper.CandidateSong{Date: "03/04", Time: "08:15", Title: "Alive"}, DiscardMissingField},
		{"missing time", scraper.CandidateSong{Date: "03/04", Artist: "Pearl Jam", Title: "Alive"}, DiscardMissingField},
		{"unsplittable time", scraper.CandidateSong{Date: "03/04", Time: "0815", Artist: "A", Title: "B"}, DiscardBadFormat},
		{"unsplittable date", scraper.CandidateSong{Date: "0304", Time: "08:15", Artist: "A", Title: "B"}, DiscardBadFormat},
		{"non-numeric date", scraper.CandidateSong{Date: "ab/cd", Time: "08:15", Artist: "A", Title: "B"}, DiscardBadNumeric},
		{"non-numeric time", scraper.CandidateSong{Date: "03/04", Time: "xx:15", Artist: "A", Title: "B"}, DiscardBadNumeric},
		{"hour and minute out of range", scraper.CandidateSong{Date: "03/04", Time: "25:99", Artist: "A", Title: "B"}, DiscardInvalidDate},
		{"month thirteen", scraper.CandidateSong{Date: "13/04", Time: "08:15", Artist: "A", Title: "B"}, DiscardInvalidDate},
		{"day thirty-two", scraper.CandidateSong{Date: "03/32", Time: "08:15", Artist: "A", Title: "B"}, DiscardInvalidDate},
		{"february thirty", scraper.CandidateSong{Date: "02/30", Time: "08:15", Artist: "A", Title: "B"}, DiscardInvalidDate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			song, reason := Normalize(tt.candidate, monday)
			assert.Nil(t, song)
			assert.Equal(t, tt.want, reason)
		})
	}
}

func TestNormalizeAutomatedFallback(t *testing.T) {
	song, reason := Normalize(scraper.CandidateSong{
		Date:   "03/04",
		Time:   "03:00",
		Artist: "Night Owl",
		Title:  "Insomnia",
	}, monday)

	require.Equal(t, DiscardNone, reason)
	assert.Equal(t, "Automated", song.DJName)
	assert.Equal(t, "Automated Programming", song.ShowName)
}
