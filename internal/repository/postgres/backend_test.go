package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestNewBackend_ClosesPoolWhenMigrationFails(t *testing.T) {
	// nothing listens on port 1, so the first query fails
	dsn := "host=127.0.0.1 port=1 user=pathfinder dbname=pathfinder sslmode=disable connect_timeout=1"
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		DisableAutomaticPing: true,
		Logger:               logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	b, err := NewBackend(db)
	require.Error(t, err)
	assert.Nil(t, b)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	assert.ErrorContains(t, sqlDB.Ping(), "database is closed")
}
