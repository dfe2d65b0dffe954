// Package gorm provides GORM-based repository implementations
package gorm

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alchemorsel/nutriplan/internal/ports/outbound"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProfileRepository implements the profile repository interface using GORM
type ProfileRepository struct {
	db *gorm.DB
}

// NewProfileRepository creates a new profile repository
func NewProfileRepository(db *gorm.DB) outbound.ProfileRepository {
	return &ProfileRepository{db: db}
}

// Create stores a new profile. A zero ID is replaced with a fresh UUID.
func (r *ProfileRepository) Create(ctx context.Context, record *outbound.ProfileRecord) error {
	model := ProfileToModel(record)

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("create profile: %w", err)
	}

	record.ID = model.ID
	record.CreatedAt = model.CreatedAt
	record.UpdatedAt = model.UpdatedAt
	return nil
}

// Update overwrites the stored fields of an existing profile
func (r *ProfileRepository) Update(ctx context.Context, record *outbound.ProfileRecord) error {
	model := ProfileToModel(record)
	if model.UpdatedAt.IsZero() {
		model.UpdatedAt = time.Now()
	}

	result := r.db.WithContext(ctx).
		Model(&ProfileModel{}).
		Where("id = ?", record.ID).
		Select("gender", "weight_kg", "height_cm", "birth_year", "activity_level", "goal", "updated_at").
		Updates(model)
	if result.Error != nil {
		return fmt.Errorf("update profile: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return outbound.ErrNotFound
	}

	record.UpdatedAt = model.UpdatedAt
	return nil
}

// FindByID finds a profile by ID
func (r *ProfileRepository) FindByID(ctx context.Context, id uuid.UUID) (*outbound.ProfileRecord, error) {
	var model ProfileModel

	result := r.db.WithContext(ctx).First(&model, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, outbound.ErrNotFound
		}
		return nil, fmt.Errorf("find profile: %w", result.Error)
	}

	return ModelToProfile(&model), nil
}
