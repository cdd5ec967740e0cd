package repository

import (
	"context"

	"loadboard/internal/domain"
)

// TransactionRepository defines the persistence operations for transactions.
type TransactionRepository interface {
	// Create persists a new transaction.
	Create(ctx context.Context, txn *domain.Transaction) error

	// GetByID retrieves a transaction by ID.
	GetByID(ctx context.Context, id string) (*domain.Transaction, error)

	// Update updates an existing transaction.
	Update(ctx context.Context, txn *domain.Transaction) error

	// ListAll retrieves all transactions, newest first.
	ListAll(ctx context.Context) ([]*domain.Transaction, error)

	// ListByUser retrieves a user's transactions, newest first.
	ListByUser(ctx context.Context, userID string) ([]*domain.Transaction, error)

	// ListByLoad retrieves a load's transactions, newest first.
	ListByLoad(ctx context.Context, loadID string) ([]*domain.Transaction, error)

	// Count counts all transactions.
	Count(ctx context.Context) (int, error)
}
