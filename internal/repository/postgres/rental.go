package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"drivesync-backend/internal/domain"
	"drivesync-backend/internal/repository"
)

type rentalRepository struct {
	db DBTX
}

func NewRentalRepository(db DBTX) repository.RentalRepository {
	return &rentalRepository{db: db}
}

const rentalColumns = `id, user_id, car_id, start_time, end_time, hours_rented, mode, delivery_location, delivery_fee_cents, total_cost_cents, status, created_on, updated_on`

func (r *rentalRepository) Create(ctx context.Context, rt *domain.Rental) error {
	query := `INSERT INTO rentals (user_id, car_id, start_time, end_time, hours_rented, mode, delivery_location, delivery_fee_cents, total_cost_cents, status, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12) RETURNING id`
	now := time.Now()
	err := r.db.QueryRowContext(ctx, query,
		rt.UserID, rt.CarID, rt.StartTime, rt.EndTime, rt.HoursRented, rt.Mode,
		rt.DeliveryLocation, rt.DeliveryFeeCents, rt.TotalCostCents, rt.Status, now, now,
	).Scan(&rt.ID)
	if err != nil {
		return domain.Infrastructure("insert rental", err)
	}
	return nil
}

func (r *rentalRepository) GetByID(ctx context.Context, id int32) (*domain.Rental, error) {
	rt := &domain.Rental{}
	query := `SELECT ` + rentalColumns + ` FROM rentals WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&rt.ID, &rt.UserID, &rt.CarID, &rt.StartTime, &rt.EndTime, &rt.HoursRented, &rt.Mode,
		&rt.DeliveryLocation, &rt.DeliveryFeeCents, &rt.TotalCostCents, &rt.Status, &rt.CreatedOn, &rt.UpdatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NotFoundf("rental %d not found", id)
	}
	if err != nil {
		return nil, domain.Infrastructure("query rental", err)
	}
	return rt, nil
}

func (r *rentalRepository) Update(ctx context.Context, rt *domain.Rental) error {
	query := `UPDATE rentals SET car_id=$1, start_time=$2, end_time=$3, hours_rented=$4, mode=$5, delivery_location=$6, status=$7, updated_on=$8 WHERE id=$9`
	if _, err := r.db.ExecContext(ctx, query,
		rt.CarID, rt.StartTime, rt.EndTime, rt.HoursRented, rt.Mode, rt.DeliveryLocation, rt.Status, time.Now(), rt.ID,
	); err != nil {
		return domain.Infrastructure("update rental", err)
	}
	return nil
}

func (r *rentalRepository) ListByUser(ctx context.Context, userID int32) ([]domain.Rental, error) {
	query := `SELECT ` + rentalColumns + ` FROM rentals WHERE user_id = $1 ORDER BY start_time DESC`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, domain.Infrastructure("list rentals", err)
	}
	defer rows.Close()

	var rentals []domain.Rental
	for rows.Next() {
		var rt domain.Rental
		if err := rows.Scan(
			&rt.ID, &rt.UserID, &rt.CarID, &rt.StartTime, &rt.EndTime, &rt.HoursRented, &rt.Mode,
			&rt.DeliveryLocation, &rt.DeliveryFeeCents, &rt.TotalCostCents, &rt.Status, &rt.CreatedOn, &rt.UpdatedOn,
		); err != nil {
			return nil, domain.Infrastructure("scan rental", err)
		}
		rentals = append(rentals, rt)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.Infrastructure("list rentals", err)
	}
	return rentals, nil
}

func (r *rentalRepository) GetActiveByCar(ctx context.Context, carID int32) (*domain.Rental, error) {
	rt := &domain.Rental{}
	query := `SELECT ` + rentalColumns + ` FROM rentals WHERE car_id = $1 AND status = $2`
	err := r.db.QueryRowContext(ctx, query, carID, domain.RentalStatusActive).Scan(
		&rt.ID, &rt.UserID, &rt.CarID, &rt.StartTime, &rt.EndTime, &rt.HoursRented, &rt.Mode,
		&rt.DeliveryLocation, &rt.DeliveryFeeCents, &rt.TotalCostCents, &rt.Status, &rt.CreatedOn, &rt.UpdatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, domain.Infrastructure("query active rental", err)
	}
	return rt, nil
}
