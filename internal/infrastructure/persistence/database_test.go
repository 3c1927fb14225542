package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shelflog/backend/internal/infrastructure/config"
	"github.com/shelflog/backend/internal/infrastructure/persistence/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestNewDatabase_UnsupportedDriver(t *testing.T) {
	_, err := NewDatabase(&config.DatabaseConfig{Driver: "mysql"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported database driver")
}

func TestDatabase_SQLite(t *testing.T) {
	db := newTestDatabase(t)
	ctx := context.Background()

	assert.Equal(t, config.DriverSQLite, db.Driver)
	require.NoError(t, db.Ping(ctx))

	stats, err := db.Stats()
	require.NoError(t, err)
	assert.Equal(t, 1, stats.MaxOpenConnections)

	t.Run("EnsureSchema is repeatable", func(t *testing.T) {
		require.NoError(t, db.EnsureSchema(ctx))
		var n int64
		require.NoError(t, db.DB.Model(&models.ItemModel{}).Count(&n).Error)
		assert.Equal(t, int64(len(DefaultItems())), n)
	})

	t.Run("Transaction rolls back on error", func(t *testing.T) {
		err := db.Transaction(ctx, func(tx *gorm.DB) error {
			if err := tx.Create(&models.ProfileModel{ID: uuid.New(), Name: "Temp", Role: "associate"}).Error; err != nil {
				return err
			}
			return assert.AnError
		})
		require.ErrorIs(t, err, assert.AnError)

		var n int64
		require.NoError(t, db.DB.Model(&models.ProfileModel{}).Count(&n).Error)
		assert.Zero(t, n)
	})
}

func TestDatabase_PingAfterClose(t *testing.T) {
	db, err := NewDatabase(&config.DatabaseConfig{Driver: config.DriverSQLite, Path: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, db.Close())
	assert.Error(t, db.Ping(context.Background()))
}
