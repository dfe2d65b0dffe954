package gorm

import (
	"context"
	"errors"
	"fmt"

	"github.com/alchemorsel/nutriplan/internal/ports/outbound"
	"gorm.io/gorm"
)

// RecipeCatalogRepository implements the catalog repository interface using GORM
type RecipeCatalogRepository struct {
	db *gorm.DB
}

// NewRecipeCatalogRepository creates a new catalog repository
func NewRecipeCatalogRepository(db *gorm.DB) outbound.RecipeCatalogRepository {
	return &RecipeCatalogRepository{db: db}
}

// maxSlotAttempts bounds retries when concurrent writers claim the same
// position in a slot
const maxSlotAttempts = 5

// Create appends a recipe to the end of its week/day slot. The unique
// (week, day, position) index rejects a position taken by a concurrent
// writer; the insert is then retried with a fresh position.
func (r *RecipeCatalogRepository) Create(ctx context.Context, entry *outbound.CatalogEntry) error {
	var err error
	for attempt := 0; attempt < maxSlotAttempts; attempt++ {
		model := CatalogEntryToModel(entry)
		err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			var next int
			if err := tx.Model(&CatalogRecipeModel{}).
				Where("week = ? AND day = ?", entry.Week, entry.Day).
				Select("COALESCE(MAX(position) + 1, 0)").
				Scan(&next).Error; err != nil {
				return err
			}
			model.Position = next
			return tx.Create(model).Error
		})
		if err == nil {
			entry.ID = model.ID
			entry.CreatedAt = model.CreatedAt
			return nil
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			break
		}
	}
	return fmt.Errorf("create catalog recipe: %w", err)
}

// FindByDay returns the recipes of one day in insertion order
func (r *RecipeCatalogRepository) FindByDay(ctx context.Context, week, day int) ([]outbound.CatalogEntry, error) {
	var models []CatalogRecipeModel

	err := r.db.WithContext(ctx).
		Where("week = ? AND day = ?", week, day).
		Order("position ASC").
		Order("created_at ASC").
		Order("id ASC").
		Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("find catalog day: %w", err)
	}

	return modelsToEntries(models), nil
}

// FindByWeek returns the recipes of a week ordered by day then insertion
func (r *RecipeCatalogRepository) FindByWeek(ctx context.Context, week int) ([]outbound.CatalogEntry, error) {
	var models []CatalogRecipeModel

	err := r.db.WithContext(ctx).
		Where("week = ?", week).
		Order("day ASC").
		Order("position ASC").
		Order("created_at ASC").
		Order("id ASC").
		Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("find catalog week: %w", err)
	}

	return modelsToEntries(models), nil
}

func modelsToEntries(models []CatalogRecipeModel) []outbound.CatalogEntry {
	entries := make([]outbound.CatalogEntry, 0, len(models))
	for i := range models {
		entries = append(entries, ModelToCatalogEntry(&models[i]))
	}
	return entries
}
