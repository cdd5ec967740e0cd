package postgres

import (
	"context"
	"database/sql"
	"errors"

	"loadboard/internal/domain"
	"loadboard/internal/repository"
)

const benefitColumns = `id, name, type, description, discount, provider, min_driver_experience, no_accidents, no_theft_complaints, max_truck_age, category, valid_from, valid_until, is_active, created_at, updated_at`

// BenefitRepository is a PostgreSQL implementation of repository.BenefitRepository.
type BenefitRepository struct {
	q Querier
}

// NewBenefitRepository creates a new PostgreSQL benefit repository.
func NewBenefitRepository(db *sql.DB) *BenefitRepository {
	return &BenefitRepository{q: db}
}

// Create persists a new benefit.
func (r *BenefitRepository) Create(ctx context.Context, benefit *domain.Benefit) error {
	query := `
		INSERT INTO benefits (` + benefitColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	`

	_, err := r.q.ExecContext(ctx, query,
		benefit.ID,
		benefit.Name,
		benefit.Type,
		benefit.Description,
		benefit.Discount,
		nullString(benefit.Provider),
		benefit.Criteria.MinDriverExperience,
		benefit.Criteria.NoAccidents,
		benefit.Criteria.NoTheftComplaints,
		benefit.Criteria.MaxTruckAge,
		nullString(benefit.Category),
		benefit.ValidFrom,
		nullTime(benefit.ValidUntil),
		benefit.IsActive,
		benefit.CreatedAt,
		benefit.UpdatedAt,
	)
	return err
}

// GetByID retrieves a benefit by ID.
func (r *BenefitRepository) GetByID(ctx context.Context, id string) (*domain.Benefit, error) {
	query := `SELECT ` + benefitColumns + ` FROM benefits WHERE id = $1`

	benefit, err := scanBenefit(r.q.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return benefit, nil
}

// Update updates an existing benefit.
func (r *BenefitRepository) Update(ctx context.Context, benefit *domain.Benefit) error {
	query := `
		UPDATE benefits
		SET name = $1, type = $2, description = $3, discount = $4, provider = $5, min_driver_experience = $6, no_accidents = $7, no_theft_complaints = $8, max_truck_age = $9, category = $10, valid_from = $11, valid_until = $12, is_active = $13, updated_at = $14
		WHERE id = $15
	`

	result, err := r.q.ExecContext(ctx, query,
		benefit.Name,
		benefit.Type,
		benefit.Description,
		benefit.Discount,
		nullString(benefit.Provider),
		benefit.Criteria.MinDriverExperience,
		benefit.Criteria.NoAccidents,
		benefit.Criteria.NoTheftComplaints,
		benefit.Criteria.MaxTruckAge,
		nullString(benefit.Category),
		benefit.ValidFrom,
		nullTime(benefit.ValidUntil),
		benefit.IsActive,
		benefit.UpdatedAt,
		benefit.ID,
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

// Delete removes a benefit.
func (r *BenefitRepository) Delete(ctx context.Context, id string) error {
	result, err := r.q.ExecContext(ctx, `DELETE FROM benefits WHERE id = $1`, id)
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

// ListActive retrieves all active benefits, newest first.
func (r *BenefitRepository) ListActive(ctx context.Context) ([]*domain.Benefit, error) {
	query := `SELECT ` + benefitColumns + ` FROM benefits WHERE is_active = true ORDER BY created_at DESC`

	rows, err := r.q.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var benefits []*domain.Benefit
	for rows.Next() {
		benefit, err := scanBenefit(rows)
		if err != nil {
			return nil, err
		}
		benefits = append(benefits, benefit)
	}
	return benefits, rows.Err()
}

// Count counts all benefits.
func (r *BenefitRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.q.QueryRowContext(ctx, `SELECT COUNT(*) FROM benefits`).Scan(&count)
	return count, err
}

func scanBenefit(row rowScanner) (*domain.Benefit, error) {
	var (
		benefit    domain.Benefit
		provider   sql.NullString
		category   sql.NullString
		validUntil sql.NullTime
	)

	err := row.Scan(
		&benefit.ID,
		&benefit.Name,
		&benefit.Type,
		&benefit.Description,
		&benefit.Discount,
		&provider,
		&benefit.Criteria.MinDriverExperience,
		&benefit.Criteria.NoAccidents,
		&benefit.Criteria.NoTheftComplaints,
		&benefit.Criteria.MaxTruckAge,
		&category,
		&benefit.ValidFrom,
		&validUntil,
		&benefit.IsActive,
		&benefit.CreatedAt,
		&benefit.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	benefit.Provider = provider.String
	benefit.Category = category.String
	benefit.ValidUntil = validUntil.Time
	return &benefit, nil
}
