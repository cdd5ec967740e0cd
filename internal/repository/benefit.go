package repository

import (
	"context"

	"loadboard/internal/domain"
)

// BenefitRepository defines the persistence operations for benefits.
type BenefitRepository interface {
	// Create persists a new benefit.
	Create(ctx context.Context, benefit *domain.Benefit) error

	// GetByID retrieves a benefit by ID.
	GetByID(ctx context.Context, id string) (*domain.Benefit, error)

	// Update updates an existing benefit.
	Update(ctx context.Context, benefit *domain.Benefit) error

	// Delete removes a benefit.
	Delete(ctx context.Context, id string) error

	// ListActive retrieves all active benefits, newest first.
	ListActive(ctx context.Context) ([]*domain.Benefit, error)

	// Count counts all benefits.
	Count(ctx context.Context) (int, error)
}
