package postgres

import (
	"context"
	"database/sql"
	"errors"

	"loadboard/internal/domain"
	"loadboard/internal/repository"
)

const bidColumns = `id, load_id, trucker_id, amount, status, notes, trucker_eligible, expires_at, accepted_at, rejected_at, created_at`

// BidRepository is a PostgreSQL implementation of repository.BidRepository.
type BidRepository struct {
	q Querier
}

// NewBidRepository creates a new PostgreSQL bid repository.
func NewBidRepository(db *sql.DB) *BidRepository {
	return &BidRepository{q: db}
}

// NewBidRepositoryWithTx creates a bid repository using a transaction.
func NewBidRepositoryWithTx(tx *sql.Tx) *BidRepository {
	return &BidRepository{q: tx}
}

// Create persists a new bid.
func (r *BidRepository) Create(ctx context.Context, bid *domain.Bid) error {
	query := `
		INSERT INTO bids (` + bidColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.q.ExecContext(ctx, query,
		bid.ID,
		bid.LoadID,
		bid.TruckerID,
		bid.Amount,
		bid.Status,
		nullString(bid.Notes),
		bid.TruckerEligible,
		nullTime(bid.ExpiresAt),
		nullTime(bid.AcceptedAt),
		nullTime(bid.RejectedAt),
		bid.CreatedAt,
	)
	return err
}

// GetByID retrieves a bid by ID.
func (r *BidRepository) GetByID(ctx context.Context, id string) (*domain.Bid, error) {
	query := `SELECT ` + bidColumns + ` FROM bids WHERE id = $1`

	bid, err := scanBid(r.q.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return bid, nil
}

// Update updates an existing bid.
func (r *BidRepository) Update(ctx context.Context, bid *domain.Bid) error {
	query := `
		UPDATE bids
		SET amount = $1, status = $2, notes = $3, trucker_eligible = $4, expires_at = $5, accepted_at = $6, rejected_at = $7
		WHERE id = $8
	`

	result, err := r.q.ExecContext(ctx, query,
		bid.Amount,
		bid.Status,
		nullString(bid.Notes),
		bid.TruckerEligible,
		nullTime(bid.ExpiresAt),
		nullTime(bid.AcceptedAt),
		nullTime(bid.RejectedAt),
		bid.ID,
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

// ListByLoad retrieves all bids on a load, lowest amount first.
func (r *BidRepository) ListByLoad(ctx context.Context, loadID string) ([]*domain.Bid, error) {
	query := `SELECT ` + bidColumns + ` FROM bids WHERE load_id = $1 ORDER BY amount ASC`
	return r.list(ctx, query, loadID)
}

// ListByTrucker retrieves all bids placed by a trucker, newest first.
func (r *BidRepository) ListByTrucker(ctx context.Context, truckerID string) ([]*domain.Bid, error) {
	query := `SELECT ` + bidColumns + ` FROM bids WHERE trucker_id = $1 ORDER BY created_at DESC`
	return r.list(ctx, query, truckerID)
}

// ListAll retrieves all bids, newest first.
func (r *BidRepository) ListAll(ctx context.Context, limit int) ([]*domain.Bid, error) {
	query := `SELECT ` + bidColumns + ` FROM bids ORDER BY created_at DESC`
	if limit > 0 {
		return r.list(ctx, query+` LIMIT $1`, limit)
	}
	return r.list(ctx, query)
}

// Count counts all bids.
func (r *BidRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.q.QueryRowContext(ctx, `SELECT COUNT(*) FROM bids`).Scan(&count)
	return count, err
}

func (r *BidRepository) list(ctx context.Context, query string, args ...any) ([]*domain.Bid, error) {
	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bids []*domain.Bid
	for rows.Next() {
		bid, err := scanBid(rows)
		if err != nil {
			return nil, err
		}
		bids = append(bids, bid)
	}
	return bids, rows.Err()
}

func scanBid(row rowScanner) (*domain.Bid, error) {
	var (
		bid        domain.Bid
		notes      sql.NullString
		expiresAt  sql.NullTime
		acceptedAt sql.NullTime
		rejectedAt sql.NullTime
	)

	err := row.Scan(
		&bid.ID,
		&bid.LoadID,
		&bid.TruckerID,
		&bid.Amount,
		&bid.Status,
		&notes,
		&bid.TruckerEligible,
		&expiresAt,
		&acceptedAt,
		&rejectedAt,
		&bid.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	bid.Notes = notes.String
	bid.ExpiresAt = expiresAt.Time
	bid.AcceptedAt = acceptedAt.Time
	bid.RejectedAt = rejectedAt.Time
	return &bid, nil
}
