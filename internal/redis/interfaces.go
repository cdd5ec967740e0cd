package redis

import (
	"context"
	"time"

	"loadboard/internal/domain"
)

// TrackingStoreInterface defines the interface for load position operations.
type TrackingStoreInterface interface {
	UpdatePosition(ctx context.Context, loadID string, lat, lng float64) error
	FindNearbyLoads(ctx context.Context, lat, lng, radiusKm float64) ([]LoadPosition, error)
	RemovePosition(ctx context.Context, loadID string) error
}

// LockStoreInterface defines the interface for distributed locking.
type LockStoreInterface interface {
	AcquireLoadLock(ctx context.Context, loadID string, ttl time.Duration) (bool, error)
	ReleaseLoadLock(ctx context.Context, loadID string) error
}

// CacheStoreInterface defines the interface for entity caching.
type CacheStoreInterface interface {
	GetLoad(ctx context.Context, loadID string) (*domain.Load, error)
	SetLoad(ctx context.Context, load *domain.Load) error
	InvalidateLoad(ctx context.Context, loadID string) error
	GetActiveBenefits(ctx context.Context) ([]byte, error)
	SetActiveBenefits(ctx context.Context, data []byte) error
	InvalidateActiveBenefits(ctx context.Context) error
}

// Ensure concrete types implement interfaces.
var (
	_ TrackingStoreInterface = (*TrackingStore)(nil)
	_ LockStoreInterface     = (*LockStore)(nil)
	_ CacheStoreInterface    = (*CacheStore)(nil)
)
