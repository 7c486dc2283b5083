package database_test

import (
	"testing"

	"gradebook/internal/database"
	"gradebook/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.GradeRecord{}))
	return db
}

func TestGradeStoreRoundTrip(t *testing.T) {
	store := database.NewGradeStore(setupTestDB(t))

	snap := model.Snapshot{
		"Alice": {"Math": 90.5, "Science": 77},
		"Bob":   {"Math": 50},
		"Carol": {},
	}
	require.NoError(t, store.Save(snap))

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, snap, loaded)
}

func TestGradeStoreEmptyDatabase(t *testing.T) {
	store := database.NewGradeStore(setupTestDB(t))

	snap, err := store.Load()
	assert.NoError(t, err)
	assert.Empty(t, snap)
	assert.NotNil(t, snap)
}

func TestGradeStoreSaveReplaces(t *testing.T) {
	db := setupTestDB(t)
	store := database.NewGradeStore(db)

	require.NoError(t, store.Save(model.Snapshot{"Alice": {"Math": 90}}))
	require.NoError(t, store.Save(model.Snapshot{"Bob": {"Art": 60}}))

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, model.Snapshot{"Bob": {"Art": 60}}, loaded)

	var count int64
	require.NoError(t, db.Model(&model.GradeRecord{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}
