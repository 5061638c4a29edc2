package pending

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/dkazlou/lingreader/internal/entities"
)

func setupTestDB(t *testing.T) *Repository {
	dbPath := filepath.Join(t.TempDir(), "pending_test.db")

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(&entities.PendingOperation{})
	require.NoError(t, err)

	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
	})

	return NewRepository(db)
}

func TestRepository_EnqueueAndList(t *testing.T) {
	repo := setupTestDB(t)

	require.NoError(t, repo.Enqueue(&entities.PendingOperation{
		Type:     "update_term",
		EntityID: 42,
		Data:     json.RawMessage(`{"status":3}`),
	}))
	require.NoError(t, repo.Enqueue(&entities.PendingOperation{
		Type:     "update_term",
		EntityID: 43,
	}))

	ops, err := repo.List()
	require.NoError(t, err)
	require.Len(t, ops, 2)
	assert.EqualValues(t, 42, ops[0].EntityID)
	assert.EqualValues(t, 43, ops[1].EntityID)
	assert.False(t, ops[0].CreatedAt.IsZero())
	assert.Zero(t, ops[0].Retries)
}

func TestRepository_Delete(t *testing.T) {
	repo := setupTestDB(t)

	op := &entities.PendingOperation{Type: "update_term", EntityID: 1}
	require.NoError(t, repo.Enqueue(op))
	require.NoError(t, repo.Delete(op.ID))

	count, err := repo.Count()
	require.NoError(t, err)
	assert.Zero(t, count)
}
