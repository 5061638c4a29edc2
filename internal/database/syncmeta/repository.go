// Package syncmeta provides the key/value sync bookkeeping store.
//
// Keys are arbitrary strings with last-write-wins upsert semantics; the
// layer performs no validation of value shapes.
//
// # Usage
//
//	repo := syncmeta.NewRepository(db)
//	err := repo.Set(entities.SyncKeyLastTextDownload, time.Now().Format(time.RFC3339))
package syncmeta

import (
	"time"

	"gorm.io/gorm"

	"github.com/dkazlou/lingreader/internal/entities"
)

// Repository handles all sync metadata database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new sync metadata repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Get retrieves a metadata value by key.
func (r *Repository) Get(key string) (*entities.SyncMeta, error) {
	var meta entities.SyncMeta
	err := r.db.Where("key = ?", key).First(&meta).Error
	if err != nil {
		return nil, err
	}
	return &meta, nil
}

// Set creates or updates a metadata value, stamping UpdatedAt.
func (r *Repository) Set(key, value string) error {
	var meta entities.SyncMeta
	result := r.db.Where("key = ?", key).First(&meta)

	if result.Error == gorm.ErrRecordNotFound {
		meta = entities.SyncMeta{
			Key:       key,
			Value:     value,
			UpdatedAt: time.Now(),
		}
		return r.db.Create(&meta).Error
	} else if result.Error != nil {
		return result.Error
	}

	meta.Value = value
	meta.UpdatedAt = time.Now()
	return r.db.Save(&meta).Error
}

// LastSyncTime is a typed convenience over the last_text_download key.
// Returns nil when no download has ever completed.
func (r *Repository) LastSyncTime() (*time.Time, error) {
	meta, err := r.Get(entities.SyncKeyLastTextDownload)
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	t, err := time.Parse(time.RFC3339, meta.Value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
