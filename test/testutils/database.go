// Package testutils provides database testing utilities
package testutils

import (
	"context"
	"testing"

	"github.com/alchemorsel/nutriplan/internal/infrastructure/persistence/sqlite"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SetupTestDatabase opens a migrated in-memory SQLite database that is
// closed when the test ends
func SetupTestDatabase(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := sqlite.SetupDatabase(sqlite.MemoryPath, "silent", zap.NewNop())
	require.NoError(t, err, "failed to set up test database")

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	return db
}

// SetupSeededTestDatabase is SetupTestDatabase with the demo data loaded
func SetupSeededTestDatabase(t *testing.T) *gorm.DB {
	t.Helper()

	db := SetupTestDatabase(t)
	require.NoError(t, sqlite.SeedDatabase(context.Background(), db), "failed to seed test database")
	return db
}

// CountRecords returns the number of rows in table
func CountRecords(t *testing.T, db *gorm.DB, table string) int64 {
	t.Helper()

	var count int64
	require.NoError(t, db.Table(table).Count(&count).Error)
	return count
}
