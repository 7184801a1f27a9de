package ingest

import (
	"context"
	"sync"
	"time"

	"github.com/terrancemacgregor/wtmd-playlist-tracker/utils"
)

// Scheduler drives the coordinator: one cycle immediately on Start,
// then one per interval until Stop. Start while running is a logged
// no-op; Stop and Start again resumes.
type Scheduler struct {
	coordinator *Coordinator
	interval    time.Duration

	mu   sync.Mutex
	stop chan struct{}
}

func NewScheduler(coordinator *Coordinator, interval time.Duration) *Scheduler {
	return &Scheduler{
		coordinator: coordinator,
		interval:    interval,
	}
}

func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stop != nil {
		utils.Logger.Info("Scheduler already running")
		return
	}
	s.stop = make(chan struct{})
	utils.Logger.Infof("Starting sync scheduler with interval %v", s.interval)
	go s.run(s.stop)
}

func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stop == nil {
		return
	}
	utils.Logger.Info("Stopping sync scheduler")
	close(s.stop)
	s.stop = nil
}

func (s *Scheduler) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stop != nil
}

func (s *Scheduler) run(stop chan struct{}) {
	s.cycle()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			s.cycle()
		case <-stop:
			return
		}
	}
}

// cycle logs failures and waits for the next tick; there is no
// retry-with-backoff.
func (s *Scheduler) cycle() {
	if _, err := s.coordinator.RunSync(context.Background()); err != nil {
		utils.Logger.Warnf("Scheduled sync failed: %v", err)
	}
}
