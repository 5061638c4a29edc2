// Package texts provides database operations for cached texts and their
// word payloads.
//
// The two collections are strictly paired: a cached_texts row exists iff
// a cached_text_words row with the same id exists. Every write and every
// delete here goes through one transaction so a half-written pair is
// never observable.
//
// # Usage
//
//	repo := texts.NewRepository(db)
//	err := repo.PutPair(text, words)
package texts

import (
	"time"

	"gorm.io/gorm"

	"github.com/dkazlou/lingreader/internal/entities"
)

// Repository handles all cached text database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new cached texts repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// PutPair upserts a CachedText and its CachedTextWords together inside
// one transaction. A second put for the same id supersedes the first.
func (r *Repository) PutPair(text *entities.CachedText, words *entities.CachedTextWords) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var existing entities.CachedText
		result := tx.First(&existing, text.ID)
		if result.Error == gorm.ErrRecordNotFound {
			if err := tx.Create(text).Error; err != nil {
				return err
			}
		} else if result.Error != nil {
			return result.Error
		} else {
			if err := tx.Save(text).Error; err != nil {
				return err
			}
		}

		var existingWords entities.CachedTextWords
		result = tx.First(&existingWords, words.TextID)
		if result.Error == gorm.ErrRecordNotFound {
			return tx.Create(words).Error
		} else if result.Error != nil {
			return result.Error
		}
		return tx.Save(words).Error
	})
}

// GetText retrieves the metadata row only.
func (r *Repository) GetText(id uint) (*entities.CachedText, error) {
	var text entities.CachedText
	err := r.db.First(&text, id).Error
	if err != nil {
		return nil, err
	}
	return &text, nil
}

// GetPair retrieves a cached text together with its word payload.
func (r *Repository) GetPair(id uint) (*entities.CachedText, *entities.CachedTextWords, error) {
	var text entities.CachedText
	if err := r.db.First(&text, id).Error; err != nil {
		return nil, nil, err
	}
	var words entities.CachedTextWords
	if err := r.db.First(&words, id).Error; err != nil {
		return nil, nil, err
	}
	return &text, &words, nil
}

// DeletePair removes the text row and its word payload inside one
// transaction. Deleting an absent id succeeds silently.
func (r *Repository) DeletePair(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&entities.CachedText{}, id).Error; err != nil {
			return err
		}
		return tx.Delete(&entities.CachedTextWords{}, id).Error
	})
}

// Touch updates last_accessed_at on the text row.
func (r *Repository) Touch(id uint, at time.Time) error {
	return r.db.Model(&entities.CachedText{}).
		Where("id = ?", id).
		Update("last_accessed_at", at).Error
}

// List returns all cached text metadata rows.
func (r *Repository) List() ([]entities.CachedText, error) {
	var cached []entities.CachedText
	err := r.db.Find(&cached).Error
	return cached, err
}

// IDs returns the ids of all cached texts.
func (r *Repository) IDs() ([]uint, error) {
	var ids []uint
	err := r.db.Model(&entities.CachedText{}).Order("id ASC").Pluck("id", &ids).Error
	return ids, err
}

// Count returns the number of cached texts.
func (r *Repository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&entities.CachedText{}).Count(&count).Error
	return count, err
}
