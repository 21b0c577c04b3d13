package database

import (
	"context"
	stderrors "errors"
	"sync/atomic"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"weatherdialog.app/internal/ports"
	"weatherdialog.app/pkg/errors"
)

// CacheEntryModel represents one cached provider response
type CacheEntryModel struct {
	Key       string    `gorm:"primaryKey;size:255"`
	Value     []byte    `gorm:"not null"`
	ExpiresAt time.Time `gorm:"index;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (CacheEntryModel) TableName() string {
	return "forecast_cache"
}

// CacheRepositoryAdapter implements the CacheProvider port using GORM
type CacheRepositoryAdapter struct {
	db    *gorm.DB
	clock ports.Clock

	hits   atomic.Int64
	misses atomic.Int64
}

// NewCacheRepositoryAdapter creates a new database cache provider
func NewCacheRepositoryAdapter(db *gorm.DB, clock ports.Clock) *CacheRepositoryAdapter {
	if clock == nil {
		clock = ports.SystemClock{}
	}
	return &CacheRepositoryAdapter{db: db, clock: clock}
}

// Get returns the stored value while it has not expired
func (r *CacheRepositoryAdapter) Get(ctx context.Context, key string) ([]byte, error) {
	if key == "" {
		return nil, errors.NewValidationError("cache key cannot be empty")
	}

	var model CacheEntryModel
	result := r.db.WithContext(ctx).Where("key = ? AND expires_at > ?", key, r.clock.Now()).First(&model)
	if result.Error != nil {
		if stderrors.Is(result.Error, gorm.ErrRecordNotFound) {
			r.misses.Add(1)
			return nil, errors.NewNotFoundError("cache miss")
		}
		return nil, errors.NewDatabaseError("failed to read cache entry", result.Error)
	}

	r.hits.Add(1)
	return model.Value, nil
}

// Set inserts or replaces the entry for key
func (r *CacheRepositoryAdapter) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if key == "" {
		return errors.NewValidationError("cache key cannot be empty")
	}
	if value == nil {
		return errors.NewValidationError("cache value cannot be nil")
	}
	if ttl <= 0 {
		return errors.NewValidationError("cache TTL must be positive")
	}

	model := &CacheEntryModel{Key: key, Value: value, ExpiresAt: r.clock.Now().Add(ttl)}
	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "expires_at", "updated_at"}),
	}).Create(model)
	if result.Error != nil {
		return errors.NewDatabaseError("failed to save cache entry", result.Error)
	}
	return nil
}

// Delete removes the entry for key
func (r *CacheRepositoryAdapter) Delete(ctx context.Context, key string) error {
	if key == "" {
		return errors.NewValidationError("cache key cannot be empty")
	}

	if err := r.db.WithContext(ctx).Delete(&CacheEntryModel{}, "key = ?", key).Error; err != nil {
		return errors.NewDatabaseError("failed to delete cache entry", err)
	}
	return nil
}

// Exists reports whether an unexpired entry is stored for key
func (r *CacheRepositoryAdapter) Exists(ctx context.Context, key string) (bool, error) {
	if key == "" {
		return false, errors.NewValidationError("cache key cannot be empty")
	}

	var count int64
	err := r.db.WithContext(ctx).Model(&CacheEntryModel{}).
		Where("key = ? AND expires_at > ?", key, r.clock.Now()).
		Count(&count).Error
	if err != nil {
		return false, errors.NewDatabaseError("failed to count cache entries", err)
	}
	return count > 0, nil
}

// Clear removes every entry
func (r *CacheRepositoryAdapter) Clear(ctx context.Context) error {
	if err := r.db.WithContext(ctx).Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&CacheEntryModel{}).Error; err != nil {
		return errors.NewDatabaseError("failed to clear cache", err)
	}
	return nil
}

// PurgeExpired deletes entries past their expiry and returns how many went
func (r *CacheRepositoryAdapter) PurgeExpired(ctx context.Context) (int64, error) {
	result := r.db.WithContext(ctx).Where("expires_at <= ?", r.clock.Now()).Delete(&CacheEntryModel{})
	if result.Error != nil {
		return 0, errors.NewDatabaseError("failed to purge expired cache entries", result.Error)
	}
	return result.RowsAffected, nil
}

// Stats returns the hits and misses served so far
func (r *CacheRepositoryAdapter) Stats() (hits, misses int64) {
	return r.hits.Load(), r.misses.Load()
}

// Ping checks the underlying connection
func (r *CacheRepositoryAdapter) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return errors.NewDatabaseError("failed to get database handle", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return errors.NewDatabaseError("database ping failed", err)
	}
	return nil
}

// Close closes the underlying connection
func (r *CacheRepositoryAdapter) Close() error {
	return Close(r.db)
}

var _ ports.CacheProvider = (*CacheRepositoryAdapter)(nil)
