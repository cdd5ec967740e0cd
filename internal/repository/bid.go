package repository

import (
	"context"

	"loadboard/internal/domain"
)

// BidRepository defines the persistence operations for bids.
type BidRepository interface {
	// Create persists a new bid.
	Create(ctx context.Context, bid *domain.Bid) error

	// GetByID retrieves a bid by ID.
	GetByID(ctx context.Context, id string) (*domain.Bid, error)

	// Update updates an existing bid.
	Update(ctx context.Context, bid *domain.Bid) error

	// ListByLoad retrieves all bids on a load, lowest amount first.
	ListByLoad(ctx context.Context, loadID string) ([]*domain.Bid, error)

	// ListByTrucker retrieves all bids placed by a trucker, newest first.
	ListByTrucker(ctx context.Context, truckerID string) ([]*domain.Bid, error)

	// ListAll retrieves all bids, newest first. A limit of 0 means no limit.
	ListAll(ctx context.Context, limit int) ([]*domain.Bid, error)

	// Count counts all bids.
	Count(ctx context.Context) (int, error)
}
