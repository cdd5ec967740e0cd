package postgres

import (
	"context"
	"database/sql"
	"errors"

	"loadboard/internal/domain"
	"loadboard/internal/repository"
)

const transactionColumns = `id, user_id, load_id, amount, type, status, description, reference, payment_method, card_last4, bank_account, provider, created_at, completed_at`

// TransactionRepository is a PostgreSQL implementation of repository.TransactionRepository.
type TransactionRepository struct {
	q Querier
}

// NewTransactionRepository creates a new PostgreSQL transaction repository.
func NewTransactionRepository(db *sql.DB) *TransactionRepository {
	return &TransactionRepository{q: db}
}

// NewTransactionRepositoryWithTx creates a transaction repository using a transaction.
func NewTransactionRepositoryWithTx(tx *sql.Tx) *TransactionRepository {
	return &TransactionRepository{q: tx}
}

// Create persists a new transaction.
func (r *TransactionRepository) Create(ctx context.Context, txn *domain.Transaction) error {
	query := `
		INSERT INTO transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`

	_, err := r.q.ExecContext(ctx, query,
		txn.ID,
		txn.UserID,
		nullString(txn.LoadID),
		txn.Amount,
		txn.Type,
		txn.Status,
		nullString(txn.Description),
		nullString(txn.Reference),
		nullString(txn.PaymentMethod),
		nullString(txn.PaymentDetails.CardLast4),
		nullString(txn.PaymentDetails.BankAccount),
		nullString(txn.PaymentDetails.Provider),
		txn.CreatedAt,
		nullTime(txn.CompletedAt),
	)
	return err
}

// GetByID retrieves a transaction by ID.
func (r *TransactionRepository) GetByID(ctx context.Context, id string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE id = $1`

	txn, err := scanTransaction(r.q.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return txn, nil
}

// Update updates an existing transaction.
func (r *TransactionRepository) Update(ctx context.Context, txn *domain.Transaction) error {
	query := `
		UPDATE transactions
		SET status = $1, description = $2, reference = $3, completed_at = $4
		WHERE id = $5
	`

	result, err := r.q.ExecContext(ctx, query,
		txn.Status,
		nullString(txn.Description),
		nullString(txn.Reference),
		nullTime(txn.CompletedAt),
		txn.ID,
	)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// ListAll retrieves all transactions, newest first.
func (r *TransactionRepository) ListAll(ctx context.Context) ([]*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions ORDER BY created_at DESC`
	return r.list(ctx, query)
}

// ListByUser retrieves a user's transactions, newest first.
func (r *TransactionRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE user_id = $1 ORDER BY created_at DESC`
	return r.list(ctx, query, userID)
}

// ListByLoad retrieves a load's transactions, newest first.
func (r *TransactionRepository) ListByLoad(ctx context.Context, loadID string) ([]*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE load_id = $1 ORDER BY created_at DESC`
	return r.list(ctx, query, loadID)
}

// Count counts all transactions.
func (r *TransactionRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.q.QueryRowContext(ctx, `SELECT COUNT(*) FROM transactions`).Scan(&count)
	return count, err
}

func (r *TransactionRepository) list(ctx context.Context, query string, args ...any) ([]*domain.Transaction, error) {
	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var txns []*domain.Transaction
	for rows.Next() {
		txn, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		txns = append(txns, txn)
	}
	return txns, rows.Err()
}

func scanTransaction(row rowScanner) (*domain.Transaction, error) {
	var (
		txn           domain.Transaction
		loadID        sql.NullString
		description   sql.NullString
		reference     sql.NullString
		paymentMethod sql.NullString
		cardLast4     sql.NullString
		bankAccount   sql.NullString
		provider      sql.NullString
		completedAt   sql.NullTime
	)

	err := row.Scan(
		&txn.ID,
		&txn.UserID,
		&loadID,
		&txn.Amount,
		&txn.Type,
		&txn.Status,
		&description,
		&reference,
		&paymentMethod,
		&cardLast4,
		&bankAccount,
		&provider,
		&txn.CreatedAt,
		&completedAt,
	)
	if err != nil {
		return nil, err
	}

	txn.LoadID = loadID.String
	txn.Description = description.String
	txn.Reference = reference.String
	txn.PaymentMethod = paymentMethod.String
	txn.PaymentDetails.CardLast4 = cardLast4.String
	txn.PaymentDetails.BankAccount = bankAccount.String
	txn.PaymentDetails.Provider = provider.String
	txn.CompletedAt = completedAt.Time
	return &txn, nil
}
