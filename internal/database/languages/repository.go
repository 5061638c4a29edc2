// Package languages provides database operations for cached language
// snapshots.
package languages

import (
	"gorm.io/gorm"

	"github.com/dkazlou/lingreader/internal/entities"
)

// Repository handles all cached language database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new cached languages repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Get retrieves a cached language by id.
func (r *Repository) Get(id uint) (*entities.CachedLanguage, error) {
	var lang entities.CachedLanguage
	err := r.db.First(&lang, id).Error
	if err != nil {
		return nil, err
	}
	return &lang, nil
}

// Exists reports whether a language snapshot is already cached. Checked
// before any network call so a language is fetched at most once.
func (r *Repository) Exists(id uint) (bool, error) {
	var count int64
	err := r.db.Model(&entities.CachedLanguage{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

// Put creates or replaces a language snapshot.
func (r *Repository) Put(lang *entities.CachedLanguage) error {
	var existing entities.CachedLanguage
	result := r.db.First(&existing, lang.ID)
	if result.Error == gorm.ErrRecordNotFound {
		return r.db.Create(lang).Error
	} else if result.Error != nil {
		return result.Error
	}
	return r.db.Save(lang).Error
}

// List returns all cached language snapshots.
func (r *Repository) List() ([]entities.CachedLanguage, error) {
	var langs []entities.CachedLanguage
	err := r.db.Find(&langs).Error
	return langs, err
}
