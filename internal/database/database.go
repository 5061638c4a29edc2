package database

import (
	"fmt"
	"log"
	"strconv"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/dkazlou/lingreader/internal/entities"
)

// SchemaVersion is stamped into sync_meta at open time. A stored version
// that differs from this one requires an explicit migration step and
// fails the open.
const SchemaVersion = 1

// Database wraps the local store. A Database may be unavailable (the
// runtime has no usable persistent storage); callers must check
// Available() and degrade rather than fail.
type Database struct {
	DB        *gorm.DB
	available bool
}

// NewDatabase opens (or creates) the offline store at dbPath, migrates
// the five cache collections and verifies the schema version.
func NewDatabase(dbPath string) (*Database, error) {
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open offline store: %w", err)
	}

	err = db.AutoMigrate(
		&entities.CachedText{},
		&entities.CachedTextWords{},
		&entities.CachedLanguage{},
		&entities.SyncMeta{},
		&entities.PendingOperation{},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to migrate offline store: %w", err)
	}

	database := &Database{DB: db, available: true}

	if err := database.checkSchemaVersion(); err != nil {
		return nil, err
	}

	log.Printf("Offline store initialized at %s (schema v%d)", dbPath, SchemaVersion)

	return database, nil
}

// NewUnavailable returns a Database marked as unsupported. Every higher
// component short-circuits to empty/no-op behavior against it.
func NewUnavailable() *Database {
	return &Database{available: false}
}

// Available reports whether persistent local storage is usable in this
// process. Computed once at open time.
func (d *Database) Available() bool {
	return d != nil && d.available
}

// Transaction runs fn inside one atomic transaction: all writes in fn
// commit together or none do.
func (d *Database) Transaction(fn func(tx *gorm.DB) error) error {
	if !d.Available() {
		return fmt.Errorf("offline store is not available")
	}
	return d.DB.Transaction(fn)
}

// ClearAll wipes all five collections inside one transaction. Idempotent.
func (d *Database) ClearAll() error {
	if !d.Available() {
		return nil
	}
	return d.DB.Transaction(func(tx *gorm.DB) error {
		for _, model := range []any{
			&entities.CachedText{},
			&entities.CachedTextWords{},
			&entities.CachedLanguage{},
			&entities.SyncMeta{},
			&entities.PendingOperation{},
		} {
			if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(model).Error; err != nil {
				return err
			}
		}
		// Restamp the schema version so the store stays openable.
		return tx.Create(&entities.SyncMeta{
			Key:       entities.SyncKeySchemaVersion,
			Value:     strconv.Itoa(SchemaVersion),
			UpdatedAt: time.Now(),
		}).Error
	})
}

func (d *Database) Close() error {
	if !d.Available() {
		return nil
	}
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (d *Database) checkSchemaVersion() error {
	var meta entities.SyncMeta
	result := d.DB.Where("key = ?", entities.SyncKeySchemaVersion).First(&meta)

	if result.Error == gorm.ErrRecordNotFound {
		meta = entities.SyncMeta{
			Key:       entities.SyncKeySchemaVersion,
			Value:     strconv.Itoa(SchemaVersion),
			UpdatedAt: time.Now(),
		}
		return d.DB.Create(&meta).Error
	} else if result.Error != nil {
		return result.Error
	}

	stored, err := strconv.Atoi(meta.Value)
	if err != nil {
		return fmt.Errorf("corrupt schema version %q: %w", meta.Value, err)
	}
	if stored != SchemaVersion {
		return fmt.Errorf("offline store schema version is %d, expected %d: migration required", stored, SchemaVersion)
	}
	return nil
}
