package repository

import (
	"context"

	"drivesync-backend/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int32) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
}

type CarRepository interface {
	Create(ctx context.Context, car *domain.Car) error
	GetByID(ctx context.Context, id int32) (*domain.Car, error)
	// GetByIDForUpdate locks the car row for the duration of the enclosing
	// transaction. Availability checks that precede a status flip must use
	// this so two simultaneous bookings cannot both see Available.
	GetByIDForUpdate(ctx context.Context, id int32) (*domain.Car, error)
	List(ctx context.Context) ([]domain.Car, error)
	UpdateStatus(ctx context.Context, id int32, status domain.CarStatus) error
}

type RentalRepository interface {
	Create(ctx context.Context, rental *domain.Rental) error
	GetByID(ctx context.Context, id int32) (*domain.Rental, error)
	Update(ctx context.Context, rental *domain.Rental) error
	ListByUser(ctx context.Context, userID int32) ([]domain.Rental, error)
	// GetActiveByCar returns the Active rental referencing the car, or
	// (nil, nil) when there is none.
	GetActiveByCar(ctx context.Context, carID int32) (*domain.Rental, error)
}

type PaymentRepository interface {
	Create(ctx context.Context, payment *domain.Payment) error
	ListByRental(ctx context.Context, rentalID int32) ([]domain.Payment, error)
}

type ChangeRequestRepository interface {
	Create(ctx context.Context, req *domain.CarChangeRequest) error
	GetByID(ctx context.Context, id int32) (*domain.CarChangeRequest, error)
	Update(ctx context.Context, req *domain.CarChangeRequest) error
	// GetPendingByRental returns the Pending request for the rental, or
	// (nil, nil) when there is none. At most one can exist.
	GetPendingByRental(ctx context.Context, rentalID int32) (*domain.CarChangeRequest, error)
	ListPending(ctx context.Context) ([]domain.ChangeRequestSummary, error)
}

// Repos bundles every repository bound to the same database handle, either
// the shared pool or a single transaction.
type Repos struct {
	Users          UserRepository
	Cars           CarRepository
	Rentals        RentalRepository
	Payments       PaymentRepository
	ChangeRequests ChangeRequestRepository
}

// Atomizer runs fn inside one store-level transaction. Mutations that touch
// two invariants at once (car status + rental status, the car swap on
// approval) must go through here.
type Atomizer interface {
	Atomic(ctx context.Context, fn func(r Repos) error) error
}
