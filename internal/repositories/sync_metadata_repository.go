package repositories

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"toursync/internal/models/db_models"
)

type SyncMetadataRepository interface {
	GetValue(ctx context.Context, key string) (string, error)
	SetValue(ctx context.Context, key string, value string) error

	// TryAcquireLock atomically claims the advisory sync-lock row. Returns
	// false when another live holder owns it; an expired claim is taken over.
	TryAcquireLock(ctx context.Context, holder string, ttl time.Duration) (bool, error)
	ReleaseLock(ctx context.Context, holder string) error
}

const syncLockID = 1

type syncMetadataRepository struct {
	db *gorm.DB
}

func NewSyncMetadataRepository(db *gorm.DB) SyncMetadataRepository {
	return &syncMetadataRepository{db: db}
}

func (r *syncMetadataRepository) GetValue(ctx context.Context, key string) (string, error) {
	var row db_models.SyncMetadata
	err := r.db.WithContext(ctx).First(&row, "key = ?", key).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", err
	}
	return row.Value, nil
}

func (r *syncMetadataRepository) SetValue(ctx context.Context, key string, value string) error {
	row := db_models.SyncMetadata{Key: key, Value: value}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&row).Error
}

func (r *syncMetadataRepository) TryAcquireLock(ctx context.Context, holder string, ttl time.Duration) (bool, error) {
	now := time.Now().Unix()
	lock := db_models.SyncLock{
		ID:        syncLockID,
		Holder:    holder,
		ExpiresAt: now + int64(ttl.Seconds()),
	}

	// Single-statement claim: the insert either lands, steals an expired
	// row, or affects nothing when a live holder exists.
	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"holder":     lock.Holder,
			"expires_at": lock.ExpiresAt,
		}),
		Where: clause.Where{Exprs: []clause.Expression{
			clause.Lt{Column: clause.Column{Table: "sync_locks", Name: "expires_at"}, Value: now},
		}},
	}).Create(&lock)

	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *syncMetadataRepository) ReleaseLock(ctx context.Context, holder string) error {
	return r.db.WithContext(ctx).
		Where("id = ? AND holder = ?", syncLockID, holder).
		Delete(&db_models.SyncLock{}).Error
}
