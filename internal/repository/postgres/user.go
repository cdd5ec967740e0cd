package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"loadboard/internal/domain"
	"loadboard/internal/repository"
)

const userColumns = `id, name, email, password_hash, role, accidents, theft_complaints, truck_age, drivers_license_years, balance, benefits_eligible, is_verified, status, created_at`

// UserRepository is a PostgreSQL implementation of repository.UserRepository.
type UserRepository struct {
	q Querier
}

// NewUserRepository creates a new PostgreSQL user repository.
func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{q: db}
}

// NewUserRepositoryWithTx creates a user repository using a transaction.
func NewUserRepositoryWithTx(tx *sql.Tx) *UserRepository {
	return &UserRepository{q: tx}
}

// Create persists a new user.
func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO users (` + userColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`

	_, err := r.q.ExecContext(ctx, query,
		user.ID,
		user.Name,
		user.Email,
		user.PasswordHash,
		user.Role,
		user.Accidents,
		user.TheftComplaints,
		user.TruckAge,
		user.DriversLicenseYears,
		user.Balance,
		user.BenefitsEligible,
		user.IsVerified,
		user.Status,
		user.CreatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		// 23505 is unique_violation; the only unique constraint is email.
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return repository.ErrDuplicateEmail
		}
		return err
	}
	return nil
}

// GetByID retrieves a user by ID.
func (r *UserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return r.scanUser(r.q.QueryRowContext(ctx, query, id))
}

// GetByEmail retrieves a user by email.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return r.scanUser(r.q.QueryRowContext(ctx, query, email))
}

// Update updates an existing user.
func (r *UserRepository) Update(ctx context.Context, user *domain.User) error {
	query := `
		UPDATE users
		SET name = $1, email = $2, password_hash = $3, role = $4, accidents = $5, theft_complaints = $6, truck_age = $7, drivers_license_years = $8, balance = $9, benefits_eligible = $10, is_verified = $11, status = $12
		WHERE id = $13
	`

	result, err := r.q.ExecContext(ctx, query,
		user.Name,
		user.Email,
		user.PasswordHash,
		user.Role,
		user.Accidents,
		user.TheftComplaints,
		user.TruckAge,
		user.DriversLicenseYears,
		user.Balance,
		user.BenefitsEligible,
		user.IsVerified,
		user.Status,
		user.ID,
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

// ListByRole retrieves users with the given role, newest first.
func (r *UserRepository) ListByRole(ctx context.Context, role domain.Role, limit int) ([]*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE role = $1 ORDER BY created_at DESC`
	args := []any{role}
	if limit > 0 {
		query += ` LIMIT $2`
		args = append(args, limit)
	}

	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*domain.User
	for rows.Next() {
		user, err := r.scanUserRow(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

// CountByRole counts users with the given role.
func (r *UserRepository) CountByRole(ctx context.Context, role domain.Role) (int, error) {
	var count int
	err := r.q.QueryRowContext(ctx, `SELECT COUNT(*) FROM users WHERE role = $1`, role).Scan(&count)
	return count, err
}

// Count counts all users.
func (r *UserRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.q.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&count)
	return count, err
}

// CountEligibleTruckers counts truckers meeting the global eligibility
// criteria. The predicate mirrors domain.User.IsEligible.
func (r *UserRepository) CountEligibleTruckers(ctx context.Context) (int, error) {
	query := `
		SELECT COUNT(*) FROM users
		WHERE role = 'trucker'
		  AND accidents = 0
		  AND theft_complaints = 0
		  AND truck_age <= 5
		  AND drivers_license_years >= 5
	`
	var count int
	err := r.q.QueryRowContext(ctx, query).Scan(&count)
	return count, err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *UserRepository) scanUser(row *sql.Row) (*domain.User, error) {
	user, err := r.scanUserRow(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return user, nil
}

func (r *UserRepository) scanUserRow(row rowScanner) (*domain.User, error) {
	var user domain.User
	err := row.Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.PasswordHash,
		&user.Role,
		&user.Accidents,
		&user.TheftComplaints,
		&user.TruckAge,
		&user.DriversLicenseYears,
		&user.Balance,
		&user.BenefitsEligible,
		&user.IsVerified,
		&user.Status,
		&user.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}
