package scheduler

import (
	"log"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/google/uuid"

	"github.com/frostwatch/frostwatch/internal/store"
)

// Scheduler periodically prunes expired entries from the series cache.
type Scheduler struct {
	scheduler *gocron.Scheduler
	cache     *store.SeriesCache
	interval  time.Duration
}

// New creates a Scheduler that prunes cache at the given interval.
func New(cache *store.SeriesCache, interval time.Duration) *Scheduler {
	s := gocron.NewScheduler(time.UTC)
	return &Scheduler{
		scheduler: s,
		cache:     cache,
		interval:  interval,
	}
}

// Start schedules the periodic prune job and starts the underlying scheduler.
func (s *Scheduler) Start() error {
	if s.interval <= 0 {
		log.Println("scheduler: prune interval disabled; nothing to schedule")
		return nil
	}

	minutes := int(s.interval.Minutes())
	if minutes <= 0 {
		minutes = 60
	}

	_, err := s.scheduler.Every(minutes).Minutes().Do(func() {
		runID := uuid.NewString()
		removed := s.cache.Prune()
		if removed > 0 {
			log.Printf("scheduler: prune run %s removed %d expired series", runID, removed)
		}
	})
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
