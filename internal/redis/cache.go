package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"loadboard/internal/domain"
)

// CacheStore handles entity caching in Redis.
type CacheStore struct {
	client *redis.Client
}

// NewCacheStore creates a new CacheStore.
func NewCacheStore(client *redis.Client) *CacheStore {
	return &CacheStore{client: client}
}

// Cache TTL constants
const (
	LoadCacheTTL    = 10 * time.Second // Load status changes during bidding
	BenefitCacheTTL = 60 * time.Second // Benefit definitions change rarely
)

// Key prefixes
const (
	loadCachePrefix   = "cache:load:"
	activeBenefitsKey = "cache:benefits:active"
)

// GetLoad retrieves a load from cache.
func (s *CacheStore) GetLoad(ctx context.Context, loadID string) (*domain.Load, error) {
	key := loadCachePrefix + loadID
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // Cache miss
		}
		return nil, err
	}

	var load domain.Load
	if err := json.Unmarshal(data, &load); err != nil {
		return nil, err
	}
	return &load, nil
}

// SetLoad stores a load in cache.
func (s *CacheStore) SetLoad(ctx context.Context, load *domain.Load) error {
	key := loadCachePrefix + load.ID
	data, err := json.Marshal(load)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, key, data, LoadCacheTTL).Err()
}

// InvalidateLoad removes a load from cache.
func (s *CacheStore) InvalidateLoad(ctx context.Context, loadID string) error {
	key := loadCachePrefix + loadID
	return s.client.Del(ctx, key).Err()
}

// GetActiveBenefits retrieves the cached active benefit list as raw JSON.
// Returns nil on cache miss.
func (s *CacheStore) GetActiveBenefits(ctx context.Context) ([]byte, error) {
	data, err := s.client.Get(ctx, activeBenefitsKey).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // Cache miss
		}
		return nil, err
	}
	return data, nil
}

// SetActiveBenefits stores the active benefit list as raw JSON.
func (s *CacheStore) SetActiveBenefits(ctx context.Context, data []byte) error {
	return s.client.Set(ctx, activeBenefitsKey, data, BenefitCacheTTL).Err()
}

// InvalidateActiveBenefits removes the active benefit list from cache.
func (s *CacheStore) InvalidateActiveBenefits(ctx context.Context) error {
	return s.client.Del(ctx, activeBenefitsKey).Err()
}
