// Package pending provides database operations for queued offline
// mutations.
//
// The queue is reserved for future write-back of offline edits: the read
// path neither produces nor drains entries, but the schema keeps them
// representable and the full clear wipes them.
package pending

import (
	"time"

	"gorm.io/gorm"

	"github.com/dkazlou/lingreader/internal/entities"
)

// Repository handles all pending operation database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new pending operations repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Enqueue appends a pending operation.
func (r *Repository) Enqueue(op *entities.PendingOperation) error {
	if op.CreatedAt.IsZero() {
		op.CreatedAt = time.Now()
	}
	return r.db.Create(op).Error
}

// List returns all pending operations in insertion order.
func (r *Repository) List() ([]entities.PendingOperation, error) {
	var ops []entities.PendingOperation
	err := r.db.Order("id ASC").Find(&ops).Error
	return ops, err
}

// Count returns the number of queued operations.
func (r *Repository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&entities.PendingOperation{}).Count(&count).Error
	return count, err
}

// Delete removes a single queued operation.
func (r *Repository) Delete(id uint) error {
	return r.db.Delete(&entities.PendingOperation{}, id).Error
}
