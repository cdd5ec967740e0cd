package repository

import (
	"context"

	"loadboard/internal/domain"
)

// UserRepository defines the persistence operations for users.
type UserRepository interface {
	// Create persists a new user.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by ID.
	GetByID(ctx context.Context, id string) (*domain.User, error)

	// GetByEmail retrieves a user by email.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// Update updates an existing user.
	Update(ctx context.Context, user *domain.User) error

	// ListByRole retrieves users with the given role, newest first.
	// A limit of 0 means no limit.
	ListByRole(ctx context.Context, role domain.Role, limit int) ([]*domain.User, error)

	// CountByRole counts users with the given role.
	CountByRole(ctx context.Context, role domain.Role) (int, error)

	// Count counts all users.
	Count(ctx context.Context) (int, error)

	// CountEligibleTruckers counts truckers satisfying the global
	// eligibility criteria, evaluated in the database.
	CountEligibleTruckers(ctx context.Context) (int, error)
}
