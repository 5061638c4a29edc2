package languages

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/dkazlou/lingreader/internal/entities"
)

func setupTestDB(t *testing.T) *Repository {
	dbPath := filepath.Join(t.TempDir(), "languages_test.db")

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(&entities.CachedLanguage{})
	require.NoError(t, err)

	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
	})

	return NewRepository(db)
}

func TestRepository_PutAndGet(t *testing.T) {
	repo := setupTestDB(t)

	lang := &entities.CachedLanguage{
		ID:           1,
		Name:         "Spanish",
		Abbreviation: "es",
		Dict1URI:     "https://dict.example.org/es/###",
		TextSize:     150,
		DownloadedAt: time.Now(),
	}
	require.NoError(t, repo.Put(lang))

	got, err := repo.Get(1)
	require.NoError(t, err)
	assert.Equal(t, "Spanish", got.Name)
	assert.Equal(t, "es", got.Abbreviation)
}

func TestRepository_Put_Replaces(t *testing.T) {
	repo := setupTestDB(t)

	require.NoError(t, repo.Put(&entities.CachedLanguage{ID: 1, Name: "Spanish", DownloadedAt: time.Now()}))
	require.NoError(t, repo.Put(&entities.CachedLanguage{ID: 1, Name: "Castilian", DownloadedAt: time.Now()}))

	langs, err := repo.List()
	require.NoError(t, err)
	require.Len(t, langs, 1)
	assert.Equal(t, "Castilian", langs[0].Name)
}

func TestRepository_Exists(t *testing.T) {
	repo := setupTestDB(t)

	exists, err := repo.Exists(2)
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, repo.Put(&entities.CachedLanguage{ID: 2, Name: "German", DownloadedAt: time.Now()}))

	exists, err = repo.Exists(2)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestRepository_Get_NotFound(t *testing.T) {
	repo := setupTestDB(t)

	_, err := repo.Get(99)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
