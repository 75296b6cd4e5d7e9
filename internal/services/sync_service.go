package services

import (
	"context"
	"errors"
	"log"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"toursync/internal/models/db_models"
	"toursync/internal/models/response_models"
	"toursync/internal/repositories"
	"toursync/pkg/utils"
)

type SyncStats struct {
	TotalProcessed int
	Inserted       int
	Updated        int
	Errors         int
	LastSync       string
}

type SyncServiceInterface interface {
	// RunSync executes one full sync pass: list source folders, select
	// documents changed since the watermark, parse and upsert each one.
	// Cron and the on-demand endpoint both call exactly this.
	RunSync(ctx context.Context) (SyncStats, error)
	GetStatus(ctx context.Context) (response_models.SyncStatusResponse, error)
}

type SyncService struct {
	outline   OutlineClientInterface
	tourRepo  repositories.TourRepository
	metaRepo  repositories.SyncMetadataRepository
	parentIDs []string
	lockTTL   time.Duration
}

func NewSyncService(
	outline OutlineClientInterface,
	tourRepo repositories.TourRepository,
	metaRepo repositories.SyncMetadataRepository,
) SyncServiceInterface {
	var parents []string
	for _, id := range strings.Split(os.Getenv("OUTLINE_TOUR_FOLDER_IDS"), ",") {
		if id = strings.TrimSpace(id); id != "" {
			parents = append(parents, id)
		}
	}

	return &SyncService{
		outline:   outline,
		tourRepo:  tourRepo,
		metaRepo:  metaRepo,
		parentIDs: parents,
		lockTTL:   10 * time.Minute,
	}
}

func (s *SyncService) RunSync(ctx context.Context) (SyncStats, error) {
	holder := newLockHolder()

	acquired, err := s.metaRepo.TryAcquireLock(ctx, holder, s.lockTTL)
	if err != nil {
		log.Printf("Sync: lock acquisition failed: %v", err)
		return SyncStats{}, utils.ErrDatabaseError
	}
	if !acquired {
		return SyncStats{}, utils.ErrSyncInProgress
	}
	defer func() {
		if err := s.metaRepo.ReleaseLock(ctx, holder); err != nil {
			log.Printf("Sync: lock release failed (expires on its own): %v", err)
		}
	}()

	// The watermark advances to the pass start time, so edits landing while
	// the pass runs are picked up next time.
	startedAt := utils.NowISO8601()

	watermark, err := s.metaRepo.GetValue(ctx, db_models.SyncMetaLastSync)
	if err != nil {
		return SyncStats{}, s.failPass(ctx, err)
	}

	var docs []OutlineDocument
	for _, parentID := range s.parentIDs {
		batch, err := s.outline.ListDocuments(ctx, parentID)
		if err != nil {
			// Listing failure is pass-fatal: watermark stays put so the
			// next pass re-selects the same candidate set.
			return SyncStats{}, s.failPass(ctx, err)
		}
		docs = append(docs, batch...)
	}

	stats := SyncStats{}
	for _, doc := range selectChanged(docs, watermark) {
		stats.TotalProcessed++

		full, err := s.outline.GetDocument(ctx, doc.ID)
		if err != nil {
			log.Printf("Sync: fetch failed for %s (%q): %v", doc.ID, doc.Title, err)
			stats.Errors++
			continue
		}

		tour, err := ParseTourDocument(*full)
		if err != nil {
			log.Printf("Sync: parse failed for %s (%q): %v", doc.ID, doc.Title, err)
			stats.Errors++
			continue
		}

		created, err := s.tourRepo.Upsert(ctx, tour)
		if err != nil {
			log.Printf("Sync: upsert failed for %s (%q): %v", tour.TourCode, doc.Title, err)
			stats.Errors++
			continue
		}
		if created {
			stats.Inserted++
		} else {
			stats.Updated++
		}
	}

	if err := s.metaRepo.SetValue(ctx, db_models.SyncMetaLastSync, startedAt); err != nil {
		return stats, s.failPass(ctx, err)
	}
	if err := s.metaRepo.SetValue(ctx, db_models.SyncMetaSyncStatus, db_models.SyncStatusSuccess); err != nil {
		return stats, utils.ErrDatabaseError
	}

	stats.LastSync = startedAt
	log.Printf("Sync: pass complete, processed=%d inserted=%d updated=%d errors=%d",
		stats.TotalProcessed, stats.Inserted, stats.Updated, stats.Errors)
	return stats, nil
}

// newLockHolder identifies this pass on the advisory lock row. An
// entropy-source failure falls back to a uuid rather than failing the pass.
func newLockHolder() string {
	holder, err := utils.GenerateSecureToken(8)
	if err != nil {
		return uuid.NewString()
	}
	return holder
}

// failPass records the error status without touching the watermark.
func (s *SyncService) failPass(ctx context.Context, cause error) error {
	log.Printf("Sync: pass failed: %v", cause)
	if err := s.metaRepo.SetValue(ctx, db_models.SyncMetaSyncStatus, db_models.SyncStatusError); err != nil {
		log.Printf("Sync: could not record error status: %v", err)
	}
	if errors.Is(cause, utils.ErrUpstreamError) {
		return cause
	}
	return utils.ErrDatabaseError
}

// selectChanged keeps documents whose updatedAt strictly exceeds the
// watermark. Both sides are fixed-width zero-padded ISO-8601 UTC strings, so
// lexical comparison is chronological. An empty watermark selects everything.
func selectChanged(docs []OutlineDocument, watermark string) []OutlineDocument {
	var changed []OutlineDocument
	for _, doc := range docs {
		if doc.UpdatedAt > watermark {
			changed = append(changed, doc)
		}
	}
	return changed
}

func (s *SyncService) GetStatus(ctx context.Context) (response_models.SyncStatusResponse, error) {
	status, err := s.metaRepo.GetValue(ctx, db_models.SyncMetaSyncStatus)
	if err != nil {
		return response_models.SyncStatusResponse{}, utils.ErrDatabaseError
	}
	lastSync, err := s.metaRepo.GetValue(ctx, db_models.SyncMetaLastSync)
	if err != nil {
		return response_models.SyncStatusResponse{}, utils.ErrDatabaseError
	}

	if status == "" {
		status = db_models.SyncStatusNeverRun
	}

	var display string
	if lastSync != "" {
		if t, err := utils.ParseISO8601(lastSync); err == nil {
			display = utils.FormatDisplayMT(t)
		}
	}

	return response_models.SyncStatusResponse{
		LastSync:        lastSync,
		LastSyncDisplay: display,
		SyncStatus:      status,
	}, nil
}
