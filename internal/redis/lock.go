package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// LockStore handles distributed locking in Redis.
type LockStore struct {
	client *redis.Client
}

// NewLockStore creates a new LockStore.
func NewLockStore(client *redis.Client) *LockStore {
	return &LockStore{client: client}
}

// AcquireLoadLock attempts to acquire a lock for the given load.
// Returns true if the lock was acquired, false if already held.
func (s *LockStore) AcquireLoadLock(ctx context.Context, loadID string, ttl time.Duration) (bool, error) {
	key := fmt.Sprintf("lock:load:%s", loadID)

	ok, err := s.client.SetNX(ctx, key, "1", ttl).Result()
	if err != nil {
		return false, err
	}

	return ok, nil
}

// ReleaseLoadLock releases the lock for the given load.
func (s *LockStore) ReleaseLoadLock(ctx context.Context, loadID string) error {
	key := fmt.Sprintf("lock:load:%s", loadID)

	return s.client.Del(ctx, key).Err()
}
