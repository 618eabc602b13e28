package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"drivesync-backend/internal/domain"
	"drivesync-backend/internal/service"
)

func newChangeRequestService(r *testRepos, email *MockEmailService) service.ChangeRequestService {
	return service.NewChangeRequestService(&fakeAtomizer{repos: r.repos()}, r.repos(), email)
}

func TestRequestCarChange(t *testing.T) {
	ctx := context.Background()

	activeRental := func() *domain.Rental {
		return &domain.Rental{ID: 42, UserID: 1, CarID: 5, Status: domain.RentalStatusActive}
	}

	t.Run("files a pending request without touching the rental", func(t *testing.T) {
		r := newTestRepos()
		r.rentals.On("GetByID", ctx, int32(42)).Return(activeRental(), nil)
		r.changeRequests.On("GetPendingByRental", ctx, int32(42)).Return(nil, nil)
		r.cars.On("GetByID", ctx, int32(8)).Return(&domain.Car{
			ID: 8, Name: "Honda Civic", Status: domain.CarStatusAvailable,
		}, nil)
		r.changeRequests.On("Create", ctx, mock.AnythingOfType("*domain.CarChangeRequest")).Run(func(args mock.Arguments) {
			args.Get(1).(*domain.CarChangeRequest).ID = 9
		}).Return(nil)

		svc := newChangeRequestService(r, new(MockEmailService))
		req, err := svc.RequestCarChange(ctx, userSession(), 42, 8)

		require.NoError(t, err)
		assert.Equal(t, int32(9), req.ID)
		assert.Equal(t, domain.ChangeRequestStatusPending, req.Status)
		assert.Equal(t, int32(5), req.OldCarID)
		assert.Equal(t, int32(8), req.NewCarID)
		r.rentals.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
		r.cars.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("second pending request conflicts", func(t *testing.T) {
		r := newTestRepos()
		r.rentals.On("GetByID", ctx, int32(42)).Return(activeRental(), nil)
		r.changeRequests.On("GetPendingByRental", ctx, int32(42)).Return(&domain.CarChangeRequest{
			ID: 9, RentalID: 42, Status: domain.ChangeRequestStatusPending,
		}, nil)

		svc := newChangeRequestService(r, new(MockEmailService))
		_, err := svc.RequestCarChange(ctx, userSession(), 42, 8)

		assert.True(t, domain.IsKind(err, domain.KindConflict))
	})

	t.Run("same car is rejected", func(t *testing.T) {
		r := newTestRepos()
		r.rentals.On("GetByID", ctx, int32(42)).Return(activeRental(), nil)

		svc := newChangeRequestService(r, new(MockEmailService))
		_, err := svc.RequestCarChange(ctx, userSession(), 42, 5)

		assert.True(t, domain.IsKind(err, domain.KindValidation))
	})

	t.Run("unavailable new car is rejected", func(t *testing.T) {
		r := newTestRepos()
		r.rentals.On("GetByID", ctx, int32(42)).Return(activeRental(), nil)
		r.changeRequests.On("GetPendingByRental", ctx, int32(42)).Return(nil, nil)
		r.cars.On("GetByID", ctx, int32(8)).Return(&domain.Car{
			ID: 8, Name: "Honda Civic", Status: domain.CarStatusMaintenance,
		}, nil)

		svc := newChangeRequestService(r, new(MockEmailService))
		_, err := svc.RequestCarChange(ctx, userSession(), 42, 8)

		assert.True(t, domain.IsKind(err, domain.KindValidation))
	})

	t.Run("inactive rental cannot be changed", func(t *testing.T) {
		r := newTestRepos()
		r.rentals.On("GetByID", ctx, int32(42)).Return(&domain.Rental{
			ID: 42, UserID: 1, CarID: 5, Status: domain.RentalStatusCompleted,
		}, nil)

		svc := newChangeRequestService(r, new(MockEmailService))
		_, err := svc.RequestCarChange(ctx, userSession(), 42, 8)

		assert.True(t, domain.IsKind(err, domain.KindState))
	})

	t.Run("only the rental owner may request", func(t *testing.T) {
		r := newTestRepos()
		r.rentals.On("GetByID", ctx, int32(42)).Return(&domain.Rental{
			ID: 42, UserID: 2, CarID: 5, Status: domain.RentalStatusActive,
		}, nil)

		svc := newChangeRequestService(r, new(MockEmailService))
		_, err := svc.RequestCarChange(ctx, userSession(), 42, 8)

		assert.True(t, domain.IsKind(err, domain.KindAuthorization))
	})
}

func TestApproveChangeRequest(t *testing.T) {
	ctx := context.Background()

	pendingRequest := func() *domain.CarChangeRequest {
		return &domain.CarChangeRequest{
			ID: 9, UserID: 1, RentalID: 42, OldCarID: 5, NewCarID: 8,
			Status: domain.ChangeRequestStatusPending,
		}
	}

	t.Run("swaps car statuses and reassigns the rental", func(t *testing.T) {
		r := newTestRepos()
		r.changeRequests.On("GetByID", ctx, int32(9)).Return(pendingRequest(), nil)
		rental := &domain.Rental{ID: 42, UserID: 1, CarID: 5, Status: domain.RentalStatusActive}
		r.rentals.On("GetByID", ctx, int32(42)).Return(rental, nil)
		r.cars.On("GetByIDForUpdate", ctx, int32(8)).Return(&domain.Car{
			ID: 8, Name: "Honda Civic", Status: domain.CarStatusAvailable,
		}, nil)
		r.cars.On("UpdateStatus", ctx, int32(5), domain.CarStatusAvailable).Return(nil)
		r.cars.On("UpdateStatus", ctx, int32(8), domain.CarStatusInUse).Return(nil)
		r.rentals.On("Update", ctx, rental).Return(nil)
		r.changeRequests.On("Update", ctx, mock.AnythingOfType("*domain.CarChangeRequest")).Return(nil)
		r.users.On("GetByID", ctx, int32(1)).Return(completeUser(), nil)

		email := new(MockEmailService)
		email.On("SendChangeRequestDecision", ctx, mock.Anything, mock.Anything, true).Return(nil)

		svc := newChangeRequestService(r, email)
		req, err := svc.ApproveChangeRequest(ctx, adminSession(), 9)

		require.NoError(t, err)
		assert.Equal(t, domain.ChangeRequestStatusApproved, req.Status)
		assert.Equal(t, int32(8), rental.CarID)
		r.cars.AssertCalled(t, "UpdateStatus", ctx, int32(5), domain.CarStatusAvailable)
		r.cars.AssertCalled(t, "UpdateStatus", ctx, int32(8), domain.CarStatusInUse)
	})

	t.Run("non admin cannot approve", func(t *testing.T) {
		r := newTestRepos()
		svc := newChangeRequestService(r, new(MockEmailService))

		_, err := svc.ApproveChangeRequest(ctx, userSession(), 9)
		assert.True(t, domain.IsKind(err, domain.KindAuthorization))
	})

	t.Run("new car taken in the meantime conflicts", func(t *testing.T) {
		r := newTestRepos()
		r.changeRequests.On("GetByID", ctx, int32(9)).Return(pendingRequest(), nil)
		r.rentals.On("GetByID", ctx, int32(42)).Return(&domain.Rental{
			ID: 42, UserID: 1, CarID: 5, Status: domain.RentalStatusActive,
		}, nil)
		r.cars.On("GetByIDForUpdate", ctx, int32(8)).Return(&domain.Car{
			ID: 8, Name: "Honda Civic", Status: domain.CarStatusInUse,
		}, nil)

		svc := newChangeRequestService(r, new(MockEmailService))
		_, err := svc.ApproveChangeRequest(ctx, adminSession(), 9)

		assert.True(t, domain.IsKind(err, domain.KindConflict))
		r.cars.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("already decided request yields state error", func(t *testing.T) {
		r := newTestRepos()
		req := pendingRequest()
		req.Status = domain.ChangeRequestStatusApproved
		r.changeRequests.On("GetByID", ctx, int32(9)).Return(req, nil)

		svc := newChangeRequestService(r, new(MockEmailService))
		_, err := svc.ApproveChangeRequest(ctx, adminSession(), 9)

		assert.True(t, domain.IsKind(err, domain.KindState))
	})

	t.Run("rental no longer active yields state error", func(t *testing.T) {
		r := newTestRepos()
		r.changeRequests.On("GetByID", ctx, int32(9)).Return(pendingRequest(), nil)
		r.rentals.On("GetByID", ctx, int32(42)).Return(&domain.Rental{
			ID: 42, UserID: 1, CarID: 5, Status: domain.RentalStatusCancelled,
		}, nil)

		svc := newChangeRequestService(r, new(MockEmailService))
		_, err := svc.ApproveChangeRequest(ctx, adminSession(), 9)

		assert.True(t, domain.IsKind(err, domain.KindState))
	})
}

func TestRejectChangeRequest(t *testing.T) {
	ctx := context.Background()

	t.Run("marks the request rejected and leaves the rental alone", func(t *testing.T) {
		r := newTestRepos()
		req := &domain.CarChangeRequest{
			ID: 9, UserID: 1, RentalID: 42, OldCarID: 5, NewCarID: 8,
			Status: domain.ChangeRequestStatusPending,
		}
		r.changeRequests.On("GetByID", ctx, int32(9)).Return(req, nil)
		r.changeRequests.On("Update", ctx, req).Return(nil)
		r.users.On("GetByID", ctx, int32(1)).Return(completeUser(), nil)

		email := new(MockEmailService)
		email.On("SendChangeRequestDecision", ctx, mock.Anything, mock.Anything, false).Return(nil)

		svc := newChangeRequestService(r, email)
		got, err := svc.RejectChangeRequest(ctx, adminSession(), 9)

		require.NoError(t, err)
		assert.Equal(t, domain.ChangeRequestStatusRejected, got.Status)
		r.rentals.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
		r.cars.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("non admin cannot reject", func(t *testing.T) {
		r := newTestRepos()
		svc := newChangeRequestService(r, new(MockEmailService))

		_, err := svc.RejectChangeRequest(ctx, userSession(), 9)
		assert.True(t, domain.IsKind(err, domain.KindAuthorization))
	})
}

func TestListPendingRequests(t *testing.T) {
	ctx := context.Background()

	t.Run("admin only", func(t *testing.T) {
		r := newTestRepos()
		svc := newChangeRequestService(r, new(MockEmailService))

		_, err := svc.ListPendingRequests(ctx, userSession())
		assert.True(t, domain.IsKind(err, domain.KindAuthorization))
	})

	t.Run("returns the queue", func(t *testing.T) {
		r := newTestRepos()
		r.changeRequests.On("ListPending", ctx).Return([]domain.ChangeRequestSummary{
			{RequestID: 9, Username: "alice", RentalID: 42, OldCarName: "Toyota Vios", NewCarName: "Honda Civic"},
		}, nil)

		svc := newChangeRequestService(r, new(MockEmailService))
		got, err := svc.ListPendingRequests(ctx, adminSession())

		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "alice", got[0].Username)
	})
}
