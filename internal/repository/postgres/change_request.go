package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"drivesync-backend/internal/domain"
	"drivesync-backend/internal/repository"
)

type changeRequestRepository struct {
	db DBTX
}

func NewChangeRequestRepository(db DBTX) repository.ChangeRequestRepository {
	return &changeRequestRepository{db: db}
}

const changeRequestColumns = `id, user_id, rental_id, old_car_id, new_car_id, status, created_on, updated_on`

func (r *changeRequestRepository) Create(ctx context.Context, req *domain.CarChangeRequest) error {
	query := `INSERT INTO car_change_requests (user_id, rental_id, old_car_id, new_car_id, status, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	now := time.Now()
	err := r.db.QueryRowContext(ctx, query, req.UserID, req.RentalID, req.OldCarID, req.NewCarID, req.Status, now, now).Scan(&req.ID)
	if err != nil {
		return domain.Infrastructure("insert change request", err)
	}
	return nil
}

func (r *changeRequestRepository) GetByID(ctx context.Context, id int32) (*domain.CarChangeRequest, error) {
	req := &domain.CarChangeRequest{}
	query := `SELECT ` + changeRequestColumns + ` FROM car_change_requests WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&req.ID, &req.UserID, &req.RentalID, &req.OldCarID, &req.NewCarID, &req.Status, &req.CreatedOn, &req.UpdatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NotFoundf("change request %d not found", id)
	}
	if err != nil {
		return nil, domain.Infrastructure("query change request", err)
	}
	return req, nil
}

func (r *changeRequestRepository) Update(ctx context.Context, req *domain.CarChangeRequest) error {
	query := `UPDATE car_change_requests SET status=$1, updated_on=$2 WHERE id=$3`
	if _, err := r.db.ExecContext(ctx, query, req.Status, time.Now(), req.ID); err != nil {
		return domain.Infrastructure("update change request", err)
	}
	return nil
}

func (r *changeRequestRepository) GetPendingByRental(ctx context.Context, rentalID int32) (*domain.CarChangeRequest, error) {
	req := &domain.CarChangeRequest{}
	query := `SELECT ` + changeRequestColumns + ` FROM car_change_requests WHERE rental_id = $1 AND status = $2`
	err := r.db.QueryRowContext(ctx, query, rentalID, domain.ChangeRequestStatusPending).Scan(
		&req.ID, &req.UserID, &req.RentalID, &req.OldCarID, &req.NewCarID, &req.Status, &req.CreatedOn, &req.UpdatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, domain.Infrastructure("query pending change request", err)
	}
	return req, nil
}

func (r *changeRequestRepository) ListPending(ctx context.Context) ([]domain.ChangeRequestSummary, error) {
	query := `SELECT r.id, u.username, r.rental_id, c_old.id, c_old.name, c_new.id, c_new.name, r.created_on
	          FROM car_change_requests r
	          JOIN users u ON r.user_id = u.id
	          JOIN cars c_old ON r.old_car_id = c_old.id
	          JOIN cars c_new ON r.new_car_id = c_new.id
	          WHERE r.status = $1
	          ORDER BY r.created_on ASC`
	rows, err := r.db.QueryContext(ctx, query, domain.ChangeRequestStatusPending)
	if err != nil {
		return nil, domain.Infrastructure("list pending change requests", err)
	}
	defer rows.Close()

	var summaries []domain.ChangeRequestSummary
	for rows.Next() {
		var s domain.ChangeRequestSummary
		if err := rows.Scan(&s.RequestID, &s.Username, &s.RentalID, &s.OldCarID, &s.OldCarName, &s.NewCarID, &s.NewCarName, &s.CreatedOn); err != nil {
			return nil, domain.Infrastructure("scan change request summary", err)
		}
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.Infrastructure("list pending change requests", err)
	}
	return summaries, nil
}
