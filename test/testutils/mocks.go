// Package testutils provides mock implementations for testing
package testutils

import (
	"context"
	"time"

	"github.com/alchemorsel/nutriplan/internal/ports/outbound"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockProfileRepository provides a mock implementation of ProfileRepository
type MockProfileRepository struct {
	mock.Mock
}

// Create stores a profile
func (m *MockProfileRepository) Create(ctx context.Context, record *outbound.ProfileRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

// Update updates a profile
func (m *MockProfileRepository) Update(ctx context.Context, record *outbound.ProfileRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

// FindByID finds a profile by ID
func (m *MockProfileRepository) FindByID(ctx context.Context, id uuid.UUID) (*outbound.ProfileRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*outbound.ProfileRecord), args.Error(1)
}

// MockRecipeCatalogRepository provides a mock implementation of RecipeCatalogRepository
type MockRecipeCatalogRepository struct {
	mock.Mock
}

// Create stores a catalog entry
func (m *MockRecipeCatalogRepository) Create(ctx context.Context, entry *outbound.CatalogEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

// FindByDay returns the entries of a day
func (m *MockRecipeCatalogRepository) FindByDay(ctx context.Context, week, day int) ([]outbound.CatalogEntry, error) {
	args := m.Called(ctx, week, day)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]outbound.CatalogEntry), args.Error(1)
}

// FindByWeek returns the entries of a week
func (m *MockRecipeCatalogRepository) FindByWeek(ctx context.Context, week int) ([]outbound.CatalogEntry, error) {
	args := m.Called(ctx, week)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]outbound.CatalogEntry), args.Error(1)
}

// MockCacheRepository provides a mock implementation of CacheRepository
type MockCacheRepository struct {
	mock.Mock
}

// Get retrieves a value
func (m *MockCacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// Set stores a value
func (m *MockCacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

// Delete removes a value
func (m *MockCacheRepository) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

// DeleteByPrefix removes every value under a prefix
func (m *MockCacheRepository) DeleteByPrefix(ctx context.Context, prefix string) error {
	args := m.Called(ctx, prefix)
	return args.Error(0)
}

var (
	_ outbound.ProfileRepository       = (*MockProfileRepository)(nil)
	_ outbound.RecipeCatalogRepository = (*MockRecipeCatalogRepository)(nil)
	_ outbound.CacheRepository         = (*MockCacheRepository)(nil)
)
