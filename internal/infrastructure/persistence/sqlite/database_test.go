package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/alchemorsel/nutriplan/internal/domain/recipe"
	"github.com/alchemorsel/nutriplan/internal/infrastructure/persistence/gorm"
	"github.com/alchemorsel/nutriplan/internal/infrastructure/persistence/sqlite"
	"github.com/alchemorsel/nutriplan/test/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestSeedDatabase(t *testing.T) {
	db := testutils.SetupSeededTestDatabase(t)
	ctx := context.Background()

	assert.Equal(t, int64(1), testutils.CountRecords(t, db, "nutrition_profiles"))
	assert.Equal(t, int64(21), testutils.CountRecords(t, db, "catalog_recipes"))

	profile, err := gorm.NewProfileRepository(db).FindByID(ctx, sqlite.DemoProfileID)
	require.NoError(t, err)
	assert.Equal(t, "female", profile.Profile.Gender)

	catalog := gorm.NewRecipeCatalogRepository(db)
	for day := 1; day <= 7; day++ {
		entries, err := catalog.FindByDay(ctx, 1, day)
		require.NoError(t, err)
		require.Len(t, entries, 3, "day %d", day)
		assert.Equal(t, recipe.MealTypeBreakfast, entries[0].Recipe.MealType)
		assert.Equal(t, recipe.MealTypeLunch, entries[1].Recipe.MealType)
		assert.Equal(t, recipe.MealTypeDinner, entries[2].Recipe.MealType)
		for _, e := range entries {
			assert.NoError(t, e.Recipe.Validate(), e.Recipe.Title)
		}
	}
}

func TestSeedDatabase_Idempotent(t *testing.T) {
	db := testutils.SetupSeededTestDatabase(t)

	require.NoError(t, sqlite.SeedDatabase(context.Background(), db))

	assert.Equal(t, int64(1), testutils.CountRecords(t, db, "nutrition_profiles"))
	assert.Equal(t, int64(21), testutils.CountRecords(t, db, "catalog_recipes"))
}

func TestSetupDatabase_FileCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "nutriplan.db")

	db, err := sqlite.SetupDatabase(path, "silent", zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	assert.FileExists(t, path)
	assert.True(t, db.Migrator().HasTable("catalog_recipes"))
}
