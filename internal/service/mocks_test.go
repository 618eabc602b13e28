package service_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"drivesync-backend/internal/domain"
	"drivesync-backend/internal/repository"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int32) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

type MockCarRepository struct {
	mock.Mock
}

func (m *MockCarRepository) Create(ctx context.Context, car *domain.Car) error {
	args := m.Called(ctx, car)
	return args.Error(0)
}

func (m *MockCarRepository) GetByID(ctx context.Context, id int32) (*domain.Car, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Car), args.Error(1)
}

func (m *MockCarRepository) GetByIDForUpdate(ctx context.Context, id int32) (*domain.Car, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Car), args.Error(1)
}

func (m *MockCarRepository) List(ctx context.Context) ([]domain.Car, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Car), args.Error(1)
}

func (m *MockCarRepository) UpdateStatus(ctx context.Context, id int32, status domain.CarStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

type MockRentalRepository struct {
	mock.Mock
}

func (m *MockRentalRepository) Create(ctx context.Context, rental *domain.Rental) error {
	args := m.Called(ctx, rental)
	return args.Error(0)
}

func (m *MockRentalRepository) GetByID(ctx context.Context, id int32) (*domain.Rental, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rental), args.Error(1)
}

func (m *MockRentalRepository) Update(ctx context.Context, rental *domain.Rental) error {
	args := m.Called(ctx, rental)
	return args.Error(0)
}

func (m *MockRentalRepository) ListByUser(ctx context.Context, userID int32) ([]domain.Rental, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Rental), args.Error(1)
}

func (m *MockRentalRepository) GetActiveByCar(ctx context.Context, carID int32) (*domain.Rental, error) {
	args := m.Called(ctx, carID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rental), args.Error(1)
}

type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) Create(ctx context.Context, payment *domain.Payment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

func (m *MockPaymentRepository) ListByRental(ctx context.Context, rentalID int32) ([]domain.Payment, error) {
	args := m.Called(ctx, rentalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Payment), args.Error(1)
}

type MockChangeRequestRepository struct {
	mock.Mock
}

func (m *MockChangeRequestRepository) Create(ctx context.Context, req *domain.CarChangeRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

func (m *MockChangeRequestRepository) GetByID(ctx context.Context, id int32) (*domain.CarChangeRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CarChangeRequest), args.Error(1)
}

func (m *MockChangeRequestRepository) Update(ctx context.Context, req *domain.CarChangeRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

func (m *MockChangeRequestRepository) GetPendingByRental(ctx context.Context, rentalID int32) (*domain.CarChangeRequest, error) {
	args := m.Called(ctx, rentalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CarChangeRequest), args.Error(1)
}

func (m *MockChangeRequestRepository) ListPending(ctx context.Context) ([]domain.ChangeRequestSummary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ChangeRequestSummary), args.Error(1)
}

type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendBookingReceipt(ctx context.Context, user *domain.User, rental *domain.Rental, car *domain.Car, payment *domain.Payment) error {
	args := m.Called(ctx, user, rental, car, payment)
	return args.Error(0)
}

func (m *MockEmailService) SendChangeRequestDecision(ctx context.Context, user *domain.User, request *domain.CarChangeRequest, approved bool) error {
	args := m.Called(ctx, user, request, approved)
	return args.Error(0)
}

// testRepos bundles fresh mocks for one test case.
type testRepos struct {
	users          *MockUserRepository
	cars           *MockCarRepository
	rentals        *MockRentalRepository
	payments       *MockPaymentRepository
	changeRequests *MockChangeRequestRepository
}

func newTestRepos() *testRepos {
	return &testRepos{
		users:          new(MockUserRepository),
		cars:           new(MockCarRepository),
		rentals:        new(MockRentalRepository),
		payments:       new(MockPaymentRepository),
		changeRequests: new(MockChangeRequestRepository),
	}
}

func (r *testRepos) repos() repository.Repos {
	return repository.Repos{
		Users:          r.users,
		Cars:           r.cars,
		Rentals:        r.rentals,
		Payments:       r.payments,
		ChangeRequests: r.changeRequests,
	}
}

// fakeAtomizer runs the transaction body against the same mocks, without a
// real database.
type fakeAtomizer struct {
	repos repository.Repos
}

func (a *fakeAtomizer) Atomic(ctx context.Context, fn func(r repository.Repos) error) error {
	return fn(a.repos)
}
