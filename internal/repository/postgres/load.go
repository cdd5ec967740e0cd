package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"loadboard/internal/domain"
	"loadboard/internal/repository"
)

const loadColumns = `id, shipper_id, origin, destination, shipment_date, weight, dim_length, dim_width, dim_height, status, winning_bid_id, assigned_trucker_id, price, loc_lat, loc_lng, loc_address, loc_updated_at, payment_status, payment_date, alerts, pickup_time, delivery_time, estimated_delivery_time, created_at`

// LoadRepository is a PostgreSQL implementation of repository.LoadRepository.
type LoadRepository struct {
	q Querier
}

// NewLoadRepository creates a new PostgreSQL load repository.
func NewLoadRepository(db *sql.DB) *LoadRepository {
	return &LoadRepository{q: db}
}

// NewLoadRepositoryWithTx creates a load repository using a transaction.
func NewLoadRepositoryWithTx(tx *sql.Tx) *LoadRepository {
	return &LoadRepository{q: tx}
}

// Create persists a new load.
func (r *LoadRepository) Create(ctx context.Context, load *domain.Load) error {
	query := `
		INSERT INTO loads (` + loadColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24)
	`

	alerts, err := marshalAlerts(load.Alerts)
	if err != nil {
		return err
	}

	_, err = r.q.ExecContext(ctx, query,
		load.ID,
		load.ShipperID,
		load.Origin,
		load.Destination,
		load.ShipmentDate,
		load.Weight,
		load.Dimensions.Length,
		load.Dimensions.Width,
		load.Dimensions.Height,
		load.Status,
		nullString(load.WinningBidID),
		nullString(load.AssignedTruckerID),
		load.Price,
		locLat(load.CurrentLocation),
		locLng(load.CurrentLocation),
		locAddress(load.CurrentLocation),
		locUpdatedAt(load.CurrentLocation),
		load.PaymentStatus,
		nullTime(load.PaymentDate),
		alerts,
		nullTime(load.PickupTime),
		nullTime(load.DeliveryTime),
		nullTime(load.EstimatedDeliveryTime),
		load.CreatedAt,
	)
	return err
}

// GetByID retrieves a load by ID.
func (r *LoadRepository) GetByID(ctx context.Context, id string) (*domain.Load, error) {
	query := `SELECT ` + loadColumns + ` FROM loads WHERE id = $1`

	load, err := scanLoad(r.q.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return load, nil
}

// Update updates an existing load.
func (r *LoadRepository) Update(ctx context.Context, load *domain.Load) error {
	query := `
		UPDATE loads
		SET origin = $1, destination = $2, shipment_date = $3, weight = $4, dim_length = $5, dim_width = $6, dim_height = $7, status = $8, winning_bid_id = $9, assigned_trucker_id = $10, price = $11, loc_lat = $12, loc_lng = $13, loc_address = $14, loc_updated_at = $15, payment_status = $16, payment_date = $17, alerts = $18, pickup_time = $19, delivery_time = $20, estimated_delivery_time = $21
		WHERE id = $22
	`

	alerts, err := marshalAlerts(load.Alerts)
	if err != nil {
		return err
	}

	result, err := r.q.ExecContext(ctx, query,
		load.Origin,
		load.Destination,
		load.ShipmentDate,
		load.Weight,
		load.Dimensions.Length,
		load.Dimensions.Width,
		load.Dimensions.Height,
		load.Status,
		nullString(load.WinningBidID),
		nullString(load.AssignedTruckerID),
		load.Price,
		locLat(load.CurrentLocation),
		locLng(load.CurrentLocation),
		locAddress(load.CurrentLocation),
		locUpdatedAt(load.CurrentLocation),
		load.PaymentStatus,
		nullTime(load.PaymentDate),
		alerts,
		nullTime(load.PickupTime),
		nullTime(load.DeliveryTime),
		nullTime(load.EstimatedDeliveryTime),
		load.ID,
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

// SetWinningBid updates only the winning-bid reference.
func (r *LoadRepository) SetWinningBid(ctx context.Context, loadID, bidID string) error {
	result, err := r.q.ExecContext(ctx, `UPDATE loads SET winning_bid_id = $1 WHERE id = $2`, bidID, loadID)
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

// List retrieves loads matching the filter, newest first.
func (r *LoadRepository) List(ctx context.Context, filter repository.LoadFilter) ([]*domain.Load, error) {
	query := `SELECT ` + loadColumns + ` FROM loads WHERE 1=1`
	var args []any

	if filter.Origin != "" {
		args = append(args, "%"+filter.Origin+"%")
		query += fmt.Sprintf(" AND origin ILIKE $%d", len(args))
	}
	if filter.Destination != "" {
		args = append(args, "%"+filter.Destination+"%")
		query += fmt.Sprintf(" AND destination ILIKE $%d", len(args))
	}
	if !filter.ShipmentFrom.IsZero() {
		args = append(args, filter.ShipmentFrom)
		query += fmt.Sprintf(" AND shipment_date >= $%d", len(args))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if filter.ShipperID != "" {
		args = append(args, filter.ShipperID)
		query += fmt.Sprintf(" AND shipper_id = $%d", len(args))
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var loads []*domain.Load
	for rows.Next() {
		load, err := scanLoad(rows)
		if err != nil {
			return nil, err
		}
		loads = append(loads, load)
	}
	return loads, rows.Err()
}

// Count counts all loads.
func (r *LoadRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.q.QueryRowContext(ctx, `SELECT COUNT(*) FROM loads`).Scan(&count)
	return count, err
}

// CountByStatus counts loads with the given status.
func (r *LoadRepository) CountByStatus(ctx context.Context, status domain.LoadStatus) (int, error) {
	var count int
	err := r.q.QueryRowContext(ctx, `SELECT COUNT(*) FROM loads WHERE status = $1`, status).Scan(&count)
	return count, err
}

func scanLoad(row rowScanner) (*domain.Load, error) {
	var (
		load         domain.Load
		winningBid   sql.NullString
		trucker      sql.NullString
		lat, lng     sql.NullFloat64
		address      sql.NullString
		locUpdated   sql.NullTime
		paymentDate  sql.NullTime
		alertsRaw    []byte
		pickupTime   sql.NullTime
		deliveryTime sql.NullTime
		estDelivery  sql.NullTime
	)

	err := row.Scan(
		&load.ID,
		&load.ShipperID,
		&load.Origin,
		&load.Destination,
		&load.ShipmentDate,
		&load.Weight,
		&load.Dimensions.Length,
		&load.Dimensions.Width,
		&load.Dimensions.Height,
		&load.Status,
		&winningBid,
		&trucker,
		&load.Price,
		&lat,
		&lng,
		&address,
		&locUpdated,
		&load.PaymentStatus,
		&paymentDate,
		&alertsRaw,
		&pickupTime,
		&deliveryTime,
		&estDelivery,
		&load.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	load.WinningBidID = winningBid.String
	load.AssignedTruckerID = trucker.String
	if lat.Valid {
		load.CurrentLocation = &domain.Location{
			Lat:       lat.Float64,
			Lng:       lng.Float64,
			Address:   address.String,
			UpdatedAt: locUpdated.Time,
		}
	}
	load.PaymentDate = paymentDate.Time
	load.PickupTime = pickupTime.Time
	load.DeliveryTime = deliveryTime.Time
	load.EstimatedDeliveryTime = estDelivery.Time

	if len(alertsRaw) > 0 {
		if err := json.Unmarshal(alertsRaw, &load.Alerts); err != nil {
			return nil, err
		}
	}

	return &load, nil
}

func marshalAlerts(alerts []domain.Alert) ([]byte, error) {
	if alerts == nil {
		alerts = []domain.Alert{}
	}
	return json.Marshal(alerts)
}

func locLat(loc *domain.Location) sql.NullFloat64 {
	if loc == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: loc.Lat, Valid: true}
}

func locLng(loc *domain.Location) sql.NullFloat64 {
	if loc == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: loc.Lng, Valid: true}
}

func locAddress(loc *domain.Location) sql.NullString {
	if loc == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: loc.Address, Valid: true}
}

func locUpdatedAt(loc *domain.Location) sql.NullTime {
	if loc == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: loc.UpdatedAt, Valid: true}
}
