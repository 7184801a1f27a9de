package ingest

import (
	"strconv"
	"strings"
	"time"

	"github.com/terrancemacgregor/wtmd-playlist-tracker/schedule"
	"github.com/terrancemacgregor/wtmd-playlist-tracker/scraper"
	"github.com/terrancemacgregor/wtmd-playlist-tracker/storage"
)

// DiscardReason explains why a candidate was rejected during
// normalization. Discards are counted, never raised.
type DiscardReason string

const (
	DiscardNone         DiscardReason = ""
	DiscardMissingField DiscardReason = "missing-field"
	DiscardBadFormat    DiscardReason = "bad-format"
	DiscardBadNumeric   DiscardReason = "bad-numeric"
	DiscardInvalidDate  DiscardReason = "invalid-date"
)

// Normalize promotes a parsed candidate to a storable song: the raw
// date/time tokens become an absolute timestamp in the current year,
// and the schedule attributes the play to a DJ and show. A nil song
// means the candidate was discarded for the returned reason.
func Normalize(c scraper.CandidateSong, now time.Time) (*storage.Song, DiscardReason) {
	if c.Date == "" || c.Time == "" || c.Artist == "" || c.Title == "" {
		return nil, DiscardMissingField
	}

	dateParts := strings.Split(c.Date, "/")
	timeParts := strings.Split(c.Time, ":")
	if len(dateParts) < 2 || len(timeParts) < 2 {
		return nil, DiscardBadFormat
	}

	month, err1 := strconv.Atoi(dateParts[0])
	day, err2 := strconv.Atoi(dateParts[1])
	hour, err3 := strconv.Atoi(timeParts[0])
	minute, err4 := strconv.Atoi(timeParts[1])
	if err1 != nil || err2 != nil || err3 != nil || err4 != nil {
		return nil, DiscardBadNumeric
	}

	playedAt, ok := buildTimestamp(now.Year(), month, day, hour, minute)
	if !ok {
		return nil, DiscardInvalidDate
	}

	info := schedule.Resolve(now.Weekday(), hour)
	return &storage.Song{
		Artist:   c.Artist,
		Title:    c.Title,
		Album:    c.Album,
		PlayedAt: playedAt,
		DJName:   info.DJ,
		ShowName: info.Show,
	}, DiscardNone
}

// buildTimestamp rejects out-of-range calendar values instead of
// letting time.Date wrap them (month 13, day 32, hour 25).
func buildTimestamp(year, month, day, hour, minute int) (time.Time, bool) {
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, false
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return time.Time{}, false
	}
	t := time.Date(year, time.Month(month), day, hour, minute, 0, 0, time.Local)
	// Day 31 of a 30-day month normalizes into the next month.
	if t.Day() != day || t.Month() != time.Month(month) {
		return time.Time{}, false
	}
	return t, true
}
