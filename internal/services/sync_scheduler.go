package services

import (
	"context"
	"errors"
	"log"
	"os"
	"time"

	"github.com/robfig/cron/v3"

	"toursync/pkg/utils"
)

// SyncScheduler runs the sync pass on a fixed interval. It shares the exact
// code path with the on-demand endpoint; only the trigger differs.
type SyncScheduler struct {
	cron        *cron.Cron
	syncService SyncServiceInterface
	schedule    string
}

func NewSyncScheduler(syncService SyncServiceInterface) *SyncScheduler {
	schedule := os.Getenv("SYNC_SCHEDULE")
	if schedule == "" {
		schedule = "@every 15m"
	}

	return &SyncScheduler{
		cron:        cron.New(),
		syncService: syncService,
		schedule:    schedule,
	}
}

func (s *SyncScheduler) Start() {
	log.Printf("Starting sync scheduler (%s)...", s.schedule)

	if _, err := s.cron.AddFunc(s.schedule, s.runOnce); err != nil {
		log.Fatalf("Invalid SYNC_SCHEDULE %q: %v", s.schedule, err)
	}

	// Initial pass so a fresh deployment does not wait a full interval.
	go s.runOnce()

	s.cron.Start()
	log.Println("Sync scheduler started")
}

func (s *SyncScheduler) Stop() {
	log.Println("Stopping sync scheduler...")
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Println("Sync scheduler stopped")
}

func (s *SyncScheduler) runOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	stats, err := s.syncService.RunSync(ctx)
	switch {
	case errors.Is(err, utils.ErrSyncInProgress):
		log.Println("Sync: another pass is running, skipping this tick")
	case err != nil:
		log.Printf("Sync: scheduled pass failed: %v", err)
	default:
		log.Printf("Sync: scheduled pass done, processed=%d inserted=%d updated=%d errors=%d",
			stats.TotalProcessed, stats.Inserted, stats.Updated, stats.Errors)
	}
}
