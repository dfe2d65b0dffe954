// Package gorm provides GORM model definitions for the application
package gorm

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/alchemorsel/nutriplan/internal/domain/recipe"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProfileModel represents the GORM model for nutrition profiles
type ProfileModel struct {
	ID            uuid.UUID `gorm:"type:char(36);primaryKey"`
	Gender        string    `gorm:"type:varchar(50)"`
	WeightKg      float64   `gorm:"not null;default:0"`
	HeightCm      float64   `gorm:"not null;default:0"`
	BirthYear     string    `gorm:"type:varchar(10)"`
	ActivityLevel string    `gorm:"type:varchar(50)"`
	Goal          string    `gorm:"type:varchar(50)"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// CatalogRecipeModel represents the GORM model for scheduled catalog recipes
type CatalogRecipeModel struct {
	ID       uuid.UUID `gorm:"type:char(36);primaryKey"`
	Week     int       `gorm:"not null;uniqueIndex:idx_catalog_slot_position,priority:1"`
	Day      int       `gorm:"not null;uniqueIndex:idx_catalog_slot_position,priority:2"`
	Position int       `gorm:"not null;default:0;uniqueIndex:idx_catalog_slot_position,priority:3"`

	Title    string `gorm:"type:varchar(255);not null"`
	MealType string `gorm:"type:varchar(20);not null;index"`
	Image    string `gorm:"type:text"`
	Calories int    `gorm:"not null;default:0"`

	Ingredients  IngredientList `gorm:"type:json"`
	Instructions StringSlice    `gorm:"type:json"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IngredientList custom type for storing ingredients as JSON
type IngredientList []recipe.Ingredient

// Scan implements the sql.Scanner interface
func (l *IngredientList) Scan(value interface{}) error {
	if value == nil {
		*l = IngredientList{}
		return nil
	}

	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return fmt.Errorf("cannot scan %T into IngredientList", value)
	}
}

// Value implements the driver.Valuer interface
func (l IngredientList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return "[]", nil
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// StringSlice custom type for handling string slices in JSON
type StringSlice []string

// Scan implements the sql.Scanner interface
func (s *StringSlice) Scan(value interface{}) error {
	if value == nil {
		*s = StringSlice{}
		return nil
	}

	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, s)
	case string:
		return json.Unmarshal([]byte(v), s)
	default:
		return fmt.Errorf("cannot scan %T into StringSlice", value)
	}
}

// Value implements the driver.Valuer interface
func (s StringSlice) Value() (driver.Value, error) {
	if len(s) == 0 {
		return "[]", nil
	}
	b, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// BeforeCreate hook for ProfileModel
func (p *ProfileModel) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// BeforeCreate hook for CatalogRecipeModel
func (c *CatalogRecipeModel) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// TableName overrides

func (ProfileModel) TableName() string {
	return "nutrition_profiles"
}

func (CatalogRecipeModel) TableName() string {
	return "catalog_recipes"
}

// AllModels returns every model managed by AutoMigrate
func AllModels() []interface{} {
	return []interface{}{
		&ProfileModel{},
		&CatalogRecipeModel{},
	}
}
