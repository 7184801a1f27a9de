// Package ingest runs the fetch, parse, normalize, store pipeline for
// one playlist sync cycle and schedules recurring cycles.
package ingest

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/terrancemacgregor/wtmd-playlist-tracker/metrics"
	"github.com/terrancemacgregor/wtmd-playlist-tracker/scraper"
	"github.com/terrancemacgregor/wtmd-playlist-tracker/storage"
	"github.com/terrancemacgregor/wtmd-playlist-tracker/utils"
)

// PageFetcher retrieves the raw playlist markup.
type PageFetcher interface {
	Fetch(ctx context.Context) (string, error)
}

// SyncResult describes one ingestion cycle. Total == New + Skipped.
type SyncResult struct {
	Total   int `json:"total"`
	New     int `json:"new"`
	Skipped int `json:"skipped"`
}

// Coordinator owns one sync cycle end to end. Timer-triggered and
// manual cycles share a single-flight guard: a caller arriving while a
// cycle is in flight gets that cycle's result instead of starting a
// redundant fetch.
type Coordinator struct {
	fetcher   PageFetcher
	parser    *scraper.Parser
	store     storage.Store
	collector *metrics.Collector
	group     singleflight.Group
}

func NewCoordinator(fetcher PageFetcher, parser *scraper.Parser, store storage.Store, collector *metrics.Collector) *Coordinator {
	return &Coordinator{
		fetcher:   fetcher,
		parser:    parser,
		store:     store,
		collector: collector,
	}
}

// RunSync performs one fetch-parse-normalize-store pass. A fetch
// failure aborts the cycle; everything after that is per-record and
// only moves counts.
func (c *Coordinator) RunSync(ctx context.Context) (*SyncResult, error) {
	result, err, shared := c.group.Do("sync", func() (interface{}, error) {
		return c.runCycle(ctx)
	})
	if shared {
		utils.Logger.Debug("Joined an in-flight sync cycle")
	}
	if err != nil {
		return nil, err
	}
	return result.(*SyncResult), nil
}

func (c *Coordinator) runCycle(ctx context.Context) (*SyncResult, error) {
	start := time.Now()
	markup, err := c.fetcher.Fetch(ctx)
	c.collector.RecordFetchLatency(time.Since(start))
	if err != nil {
		c.collector.RecordFetchError()
		c.collector.RecordCycle("fetch_error", 0, 0)
		return nil, fmt.Errorf("sync cycle: %w", err)
	}

	now := time.Now()
	candidates := c.parser.Parse(markup, now)
	result := &SyncResult{Total: len(candidates)}

	for _, candidate := range candidates {
		song, reason := Normalize(candidate, now)
		if song == nil {
			utils.Logger.Debugf("Discarding candidate %q - %q: %s", candidate.Artist, candidate.Title, reason)
			result.Skipped++
			continue
		}

		inserted, err := c.store.InsertSong(song)
		if err != nil {
			utils.Logger.Warnf("Error storing %s - %s: %v", song.Artist, song.Title, err)
			result.Skipped++
			continue
		}
		if inserted {
			result.New++
		} else {
			// Duplicate triple: the insert was a no-op.
			result.Skipped++
		}
	}

	c.collector.RecordCycle("success", result.New, result.Skipped)
	utils.Logger.Infof("Sync cycle complete: %d parsed, %d new, %d skipped", result.Total, result.New, result.Skipped)
	return result, nil
}
