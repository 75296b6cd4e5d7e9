package repositories

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"toursync/internal/models/db_models"
)

type TourRepository interface {
	// Upsert writes a freshly parsed tour keyed by tour code, fully
	// replacing scalar fields and marketing-copy children. Returns whether
	// a new row was created.
	Upsert(ctx context.Context, tour *db_models.Tour) (bool, error)

	GetByCode(ctx context.Context, code string) (*db_models.Tour, error)
	List(ctx context.Context, filters map[string]string) ([]db_models.Tour, error)
}

// Filterable columns for List. Unknown filter keys are ignored.
var tourFilterColumns = map[string]string{
	"type":       "tour_type",
	"difficulty": "difficulty",
	"region":     "region",
	"duration":   "duration",
}

type tourRepository struct {
	db *gorm.DB
}

func NewTourRepository(db *gorm.DB) TourRepository {
	return &tourRepository{db: db}
}

func (r *tourRepository) Upsert(ctx context.Context, tour *db_models.Tour) (bool, error) {
	copies := tour.MarketingCopies
	tour.MarketingCopies = nil

	var existing db_models.Tour
	err := r.db.WithContext(ctx).
		Where("tour_code = ?", tour.TourCode).
		First(&existing).Error

	created := false
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		if err := r.db.WithContext(ctx).Create(tour).Error; err != nil {
			return false, fmt.Errorf("insert tour %s: %w", tour.TourCode, err)
		}
		created = true
	case err != nil:
		return false, err
	default:
		// Full replace of everything the source document owns. Row identity
		// and the out-of-band is_active flag are preserved.
		tour.ID = existing.ID
		tour.CreatedAt = existing.CreatedAt
		tour.IsActive = existing.IsActive
		if err := r.db.WithContext(ctx).Save(tour).Error; err != nil {
			return false, fmt.Errorf("update tour %s: %w", tour.TourCode, err)
		}
	}

	// Children are replaced best-effort after the parent write. A failure
	// here is a recoverable per-record error; the next successful pass
	// converges the child set.
	if err := r.replaceMarketingCopies(ctx, tour.TourCode, copies); err != nil {
		return created, fmt.Errorf("replace marketing copies for %s: %w", tour.TourCode, err)
	}

	tour.MarketingCopies = copies
	return created, nil
}

func (r *tourRepository) replaceMarketingCopies(ctx context.Context, tourCode string, copies []db_models.MarketingCopy) error {
	if err := r.db.WithContext(ctx).
		Where("tour_code = ?", tourCode).
		Delete(&db_models.MarketingCopy{}).Error; err != nil {
		return err
	}

	if len(copies) == 0 {
		return nil
	}

	for i := range copies {
		copies[i].TourCode = tourCode
		copies[i].Position = i
	}
	return r.db.WithContext(ctx).Create(&copies).Error
}

func (r *tourRepository) GetByCode(ctx context.Context, code string) (*db_models.Tour, error) {
	var tour db_models.Tour
	err := r.db.WithContext(ctx).
		Preload("MarketingCopies", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		First(&tour, "tour_code = ? AND is_active = ?", code, true).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &tour, nil
}

func (r *tourRepository) List(ctx context.Context, filters map[string]string) ([]db_models.Tour, error) {
	query := r.db.WithContext(ctx).Where("is_active = ?", true)

	for key, value := range filters {
		column, ok := tourFilterColumns[key]
		if !ok || value == "" {
			continue
		}
		query = query.Where(column+" = ?", value)
	}

	var tours []db_models.Tour
	if err := query.Order("tour_code ASC").Find(&tours).Error; err != nil {
		return nil, err
	}
	return tours, nil
}
