package repository

import (
	"context"
	"time"

	"loadboard/internal/domain"
)

// LoadFilter narrows List results. Zero values mean "no constraint".
type LoadFilter struct {
	Origin       string // substring, case-insensitive
	Destination  string // substring, case-insensitive
	ShipmentFrom time.Time
	Status       domain.LoadStatus
	ShipperID    string
}

// LoadRepository defines the persistence operations for loads.
type LoadRepository interface {
	// Create persists a new load.
	Create(ctx context.Context, load *domain.Load) error

	// GetByID retrieves a load by ID.
	GetByID(ctx context.Context, id string) (*domain.Load, error)

	// Update updates an existing load.
	Update(ctx context.Context, load *domain.Load) error

	// SetWinningBid points the load's winning-bid reference at the
	// given bid without touching any other column.
	SetWinningBid(ctx context.Context, loadID, bidID string) error

	// List retrieves loads matching the filter, newest first.
	List(ctx context.Context, filter LoadFilter) ([]*domain.Load, error)

	// Count counts all loads.
	Count(ctx context.Context) (int, error)

	// CountByStatus counts loads with the given status.
	CountByStatus(ctx context.Context, status domain.LoadStatus) (int, error)
}
