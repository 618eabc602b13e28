package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"drivesync-backend/internal/domain"
	"drivesync-backend/internal/repository"
)

type carRepository struct {
	db DBTX
}

func NewCarRepository(db DBTX) repository.CarRepository {
	return &carRepository{db: db}
}

const carColumns = `id, name, hourly_rate_cents, condition, status, image_url, created_on`

func (r *carRepository) Create(ctx context.Context, c *domain.Car) error {
	query := `INSERT INTO cars (name, hourly_rate_cents, condition, status, image_url, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	err := r.db.QueryRowContext(ctx, query, c.Name, c.HourlyRateCents, c.Condition, c.Status, c.ImageURL, time.Now()).Scan(&c.ID)
	if err != nil {
		return domain.Infrastructure("insert car", err)
	}
	return nil
}

func (r *carRepository) GetByID(ctx context.Context, id int32) (*domain.Car, error) {
	return r.get(ctx, `SELECT `+carColumns+` FROM cars WHERE id = $1`, id)
}

func (r *carRepository) GetByIDForUpdate(ctx context.Context, id int32) (*domain.Car, error) {
	return r.get(ctx, `SELECT `+carColumns+` FROM cars WHERE id = $1 FOR UPDATE`, id)
}

func (r *carRepository) get(ctx context.Context, query string, id int32) (*domain.Car, error) {
	c := &domain.Car{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&c.ID, &c.Name, &c.HourlyRateCents, &c.Condition, &c.Status, &c.ImageURL, &c.CreatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NotFoundf("car %d not found", id)
	}
	if err != nil {
		return nil, domain.Infrastructure("query car", err)
	}
	return c, nil
}

func (r *carRepository) List(ctx context.Context) ([]domain.Car, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+carColumns+` FROM cars ORDER BY id`)
	if err != nil {
		return nil, domain.Infrastructure("list cars", err)
	}
	defer rows.Close()

	var cars []domain.Car
	for rows.Next() {
		var c domain.Car
		if err := rows.Scan(&c.ID, &c.Name, &c.HourlyRateCents, &c.Condition, &c.Status, &c.ImageURL, &c.CreatedOn); err != nil {
			return nil, domain.Infrastructure("scan car", err)
		}
		cars = append(cars, c)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.Infrastructure("list cars", err)
	}
	return cars, nil
}

func (r *carRepository) UpdateStatus(ctx context.Context, id int32, status domain.CarStatus) error {
	if _, err := r.db.ExecContext(ctx, `UPDATE cars SET status=$1 WHERE id=$2`, status, id); err != nil {
		return domain.Infrastructure("update car status", err)
	}
	return nil
}
