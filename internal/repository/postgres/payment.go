package postgres

import (
	"context"
	"time"

	"drivesync-backend/internal/domain"
	"drivesync-backend/internal/repository"
)

type paymentRepository struct {
	db DBTX
}

func NewPaymentRepository(db DBTX) repository.PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) Create(ctx context.Context, p *domain.Payment) error {
	query := `INSERT INTO payments (rental_id, reference, amount_cents, payment_time)
	          VALUES ($1, $2, $3, $4) RETURNING id`
	if p.PaymentTime.IsZero() {
		p.PaymentTime = time.Now()
	}
	err := r.db.QueryRowContext(ctx, query, p.RentalID, p.Reference, p.AmountCents, p.PaymentTime).Scan(&p.ID)
	if err != nil {
		return domain.Infrastructure("insert payment", err)
	}
	return nil
}

func (r *paymentRepository) ListByRental(ctx context.Context, rentalID int32) ([]domain.Payment, error) {
	query := `SELECT id, rental_id, reference, amount_cents, payment_time FROM payments WHERE rental_id = $1 ORDER BY payment_time`
	rows, err := r.db.QueryContext(ctx, query, rentalID)
	if err != nil {
		return nil, domain.Infrastructure("list payments", err)
	}
	defer rows.Close()

	var payments []domain.Payment
	for rows.Next() {
		var p domain.Payment
		if err := rows.Scan(&p.ID, &p.RentalID, &p.Reference, &p.AmountCents, &p.PaymentTime); err != nil {
			return nil, domain.Infrastructure("scan payment", err)
		}
		payments = append(payments, p)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.Infrastructure("list payments", err)
	}
	return payments, nil
}
