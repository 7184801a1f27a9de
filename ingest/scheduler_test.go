package ingest

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/terrancemacgregor/wtmd-playlist-tracker/scraper"
	"github.com/terrancemacgregor/wtmd-playlist-tracker/storage"
)

type countingFetcher struct {
	mu    sync.Mutex
	calls int
}

func (f *countingFetcher) Fetch(ctx context.Context) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return "<html><body></body></html>", nil
}

func (f *countingFetcher) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func newTestScheduler(interval time.Duration) (*Scheduler, *countingFetcher) {
	fetcher := &countingFetcher{}
	coordinator := NewCoordinator(fetcher, scraper.NewParser(), storage.NewMemoryStore(), nil)
	return NewScheduler(coordinator, interval), fetcher
}

func TestSchedulerRunsImmediatelyAndOnInterval(t *testing.T) {
	scheduler, fetcher := newTestScheduler(20 * time.Millisecond)

	scheduler.Start()
	defer scheduler.Stop()

	require.Eventually(t, func() bool { return fetcher.count() >= 2 },
		time.Second, 5*time.Millisecond,
		"expected an immediate cycle plus at least one interval cycle")
}

func TestSchedulerStartIsIdempotent(t *testing.T) {
	scheduler, _ := newTestScheduler(time.Hour)

	scheduler.Start()
	scheduler.Start() // no-op, must not panic or spawn a second loop
	assert.True(t, scheduler.Running())

	scheduler.Stop()
	assert.False(t, scheduler.Running())
}

func TestSchedulerStopsAndResumes(t *testing.T) {
	scheduler, fetcher := newTestScheduler(time.Hour)

	scheduler.Start()
	require.Eventually(t, func() bool { return fetcher.count() == 1 },
		time.Second, 5*time.Millisecond)
	scheduler.Stop()

	// Restart triggers a fresh immediate cycle.
	scheduler.Start()
	defer scheduler.Stop()
	require.Eventually(t, func() bool { return fetcher.count() == 2 },
		time.Second, 5*time.Millisecond)
}

func TestSchedulerStopWithoutStart(t *testing.T) {
	scheduler, _ := newTestScheduler(time.Hour)
	scheduler.Stop() // must be a no-op
	assert.False(t, scheduler.Running())
}
