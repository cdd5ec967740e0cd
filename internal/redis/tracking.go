package redis

import (
	"context"

	"github.com/redis/go-redis/v9"
)

const loadPositionKey = "loads:positions"

// LoadPosition represents a load's last reported position.
type LoadPosition struct {
	LoadID string  `json:"loadId"`
	Lat    float64 `json:"lat"`
	Lng    float64 `json:"lng"`
}

// TrackingStore handles load position operations in Redis.
type TrackingStore struct {
	client *redis.Client
}

// NewTrackingStore creates a new TrackingStore.
func NewTrackingStore(client *redis.Client) *TrackingStore {
	return &TrackingStore{client: client}
}

// UpdatePosition stores a load's position using GEOADD.
func (s *TrackingStore) UpdatePosition(ctx context.Context, loadID string, lat, lng float64) error {
	return s.client.GeoAdd(ctx, loadPositionKey, &redis.GeoLocation{
		Name:      loadID,
		Longitude: lng,
		Latitude:  lat,
	}).Err()
}

// FindNearbyLoads returns loads within the given radius (in kilometers).
func (s *TrackingStore) FindNearbyLoads(ctx context.Context, lat, lng, radiusKm float64) ([]LoadPosition, error) {
	results, err := s.client.GeoRadius(ctx, loadPositionKey, lng, lat, &redis.GeoRadiusQuery{
		Radius:    radiusKm,
		Unit:      "km",
		WithCoord: true,
		Sort:      "ASC",
	}).Result()
	if err != nil {
		return nil, err
	}

	positions := make([]LoadPosition, 0, len(results))
	for _, r := range results {
		positions = append(positions, LoadPosition{
			LoadID: r.Name,
			Lat:    r.Latitude,
			Lng:    r.Longitude,
		})
	}

	return positions, nil
}

// RemovePosition removes a load's position from the geo index.
func (s *TrackingStore) RemovePosition(ctx context.Context, loadID string) error {
	return s.client.ZRem(ctx, loadPositionKey, loadID).Err()
}
