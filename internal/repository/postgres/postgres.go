package postgres

import (
	"context"
	"database/sql"

	"drivesync-backend/internal/domain"
	"drivesync-backend/internal/repository"

	_ "github.com/lib/pq"
)

// DBTX is satisfied by both *sql.DB and *sql.Tx, so every repository can be
// bound either to the pool or to a transaction started by Atomic.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type Store struct {
	db *sql.DB
	repository.UserRepository
	repository.CarRepository
	repository.RentalRepository
	repository.PaymentRepository
	repository.ChangeRequestRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                      db,
		UserRepository:          NewUserRepository(db),
		CarRepository:           NewCarRepository(db),
		RentalRepository:        NewRentalRepository(db),
		PaymentRepository:       NewPaymentRepository(db),
		ChangeRequestRepository: NewChangeRequestRepository(db),
	}
}

func reposFor(db DBTX) repository.Repos {
	return repository.Repos{
		Users:          NewUserRepository(db),
		Cars:           NewCarRepository(db),
		Rentals:        NewRentalRepository(db),
		Payments:       NewPaymentRepository(db),
		ChangeRequests: NewChangeRequestRepository(db),
	}
}

// Atomic runs fn within a single database transaction; the repositories
// passed to fn are bound to it. Any error from fn rolls the whole
// transaction back, so a failed availability check leaves no partial write.
func (s *Store) Atomic(ctx context.Context, fn func(r repository.Repos) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.Infrastructure("begin transaction", err)
	}
	if err := fn(reposFor(tx)); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return domain.Infrastructure("commit transaction", err)
	}
	return nil
}
