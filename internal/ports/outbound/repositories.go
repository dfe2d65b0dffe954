// Package outbound defines the interfaces for outbound ports (secondary/driven adapters)
// These are the interfaces that the application uses to interact with external systems
package outbound

import (
	"context"
	"errors"
	"time"

	"github.com/alchemorsel/nutriplan/internal/domain/nutrition"
	"github.com/alchemorsel/nutriplan/internal/domain/recipe"
	"github.com/google/uuid"
)

var (
	// ErrNotFound is returned by repositories when no record matches.
	ErrNotFound = errors.New("record not found")
	// ErrCacheMiss is returned by caches for absent or expired keys.
	ErrCacheMiss = errors.New("cache miss")
)

// ProfileRecord is a stored user profile
type ProfileRecord struct {
	ID        uuid.UUID
	Profile   nutrition.UserProfile
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CatalogEntry is a catalog recipe scheduled for a week and day
type CatalogEntry struct {
	ID        uuid.UUID
	Week      int
	Day       int
	Recipe    recipe.Recipe
	CreatedAt time.Time
}

// ProfileRepository defines the interface for profile persistence
type ProfileRepository interface {
	Create(ctx context.Context, record *ProfileRecord) error
	Update(ctx context.Context, record *ProfileRecord) error
	FindByID(ctx context.Context, id uuid.UUID) (*ProfileRecord, error)
}

// RecipeCatalogRepository defines the interface for the recipe catalog.
// Finders return entries in insertion order.
type RecipeCatalogRepository interface {
	Create(ctx context.Context, entry *CatalogEntry) error
	FindByDay(ctx context.Context, week, day int) ([]CatalogEntry, error)
	FindByWeek(ctx context.Context, week int) ([]CatalogEntry, error)
}

// CacheRepository defines the interface for caching operations
type CacheRepository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	DeleteByPrefix(ctx context.Context, prefix string) error
}
