package service

import (
	"context"

	"drivesync-backend/internal/domain"
	"drivesync-backend/internal/logger"
	"drivesync-backend/internal/repository"
)

type changeRequestService struct {
	store          repository.Atomizer
	users          repository.UserRepository
	cars           repository.CarRepository
	rentals        repository.RentalRepository
	changeRequests repository.ChangeRequestRepository
	emailSvc       EmailService
}

func NewChangeRequestService(store repository.Atomizer, repos repository.Repos, emailSvc EmailService) ChangeRequestService {
	return &changeRequestService{
		store:          store,
		users:          repos.Users,
		cars:           repos.Cars,
		rentals:        repos.Rentals,
		changeRequests: repos.ChangeRequests,
		emailSvc:       emailSvc,
	}
}

// RequestCarChange files a request to swap the car on an active rental.
// The rental keeps its current car until an admin approves. At most one
// pending request may exist per rental.
func (s *changeRequestService) RequestCarChange(ctx context.Context, session *domain.Session, rentalID, newCarID int32) (*domain.CarChangeRequest, error) {
	rental, err := s.rentals.GetByID(ctx, rentalID)
	if err != nil {
		return nil, err
	}
	if rental.UserID != session.UserID {
		return nil, domain.Authorizationf("rental %d does not belong to you", rentalID)
	}
	if rental.Status != domain.RentalStatusActive {
		return nil, domain.Statef("rental %d is already %s", rentalID, rental.Status)
	}
	if newCarID == rental.CarID {
		return nil, domain.Validationf("requested car is already assigned to this rental")
	}

	pending, err := s.changeRequests.GetPendingByRental(ctx, rentalID)
	if err != nil {
		return nil, err
	}
	if pending != nil {
		return nil, domain.Conflictf("rental %d already has a pending change request", rentalID)
	}

	newCar, err := s.cars.GetByID(ctx, newCarID)
	if err != nil {
		return nil, err
	}
	if newCar.Status != domain.CarStatusAvailable {
		return nil, domain.Validationf("car %q is not available", newCar.Name)
	}

	req := &domain.CarChangeRequest{
		UserID:   session.UserID,
		RentalID: rentalID,
		OldCarID: rental.CarID,
		NewCarID: newCarID,
		Status:   domain.ChangeRequestStatusPending,
	}
	if err := s.changeRequests.Create(ctx, req); err != nil {
		return nil, err
	}

	logger.Info("car change requested",
		"request_id", req.ID, "rental_id", rentalID,
		"old_car_id", req.OldCarID, "new_car_id", newCarID)
	return req, nil
}

// ApproveChangeRequest swaps the rental onto the requested car. The new car
// is locked and re-checked inside the transaction; if it was taken since
// the request was filed the approval fails and the request stays Pending.
func (s *changeRequestService) ApproveChangeRequest(ctx context.Context, session *domain.Session, requestID int32) (*domain.CarChangeRequest, error) {
	if !session.IsAdmin() {
		return nil, domain.Authorizationf("only admins can approve change requests")
	}

	var req *domain.CarChangeRequest
	err := s.store.Atomic(ctx, func(r repository.Repos) error {
		var err error
		req, err = r.ChangeRequests.GetByID(ctx, requestID)
		if err != nil {
			return err
		}
		if req.Status != domain.ChangeRequestStatusPending {
			return domain.Statef("change request %d is already %s", requestID, req.Status)
		}

		rental, err := r.Rentals.GetByID(ctx, req.RentalID)
		if err != nil {
			return err
		}
		if rental.Status != domain.RentalStatusActive {
			return domain.Statef("rental %d is already %s", rental.ID, rental.Status)
		}

		newCar, err := r.Cars.GetByIDForUpdate(ctx, req.NewCarID)
		if err != nil {
			return err
		}
		if newCar.Status != domain.CarStatusAvailable {
			return domain.Conflictf("car %q is no longer available", newCar.Name)
		}

		if err := r.Cars.UpdateStatus(ctx, req.OldCarID, domain.CarStatusAvailable); err != nil {
			return err
		}
		if err := r.Cars.UpdateStatus(ctx, req.NewCarID, domain.CarStatusInUse); err != nil {
			return err
		}

		rental.CarID = req.NewCarID
		if err := r.Rentals.Update(ctx, rental); err != nil {
			return err
		}

		req.Status = domain.ChangeRequestStatusApproved
		return r.ChangeRequests.Update(ctx, req)
	})
	if err != nil {
		return nil, err
	}

	logger.Info("change request approved",
		"request_id", requestID, "rental_id", req.RentalID,
		"new_car_id", req.NewCarID, "admin_id", session.UserID)

	s.notifyDecision(ctx, req, true)
	return req, nil
}

func (s *changeRequestService) RejectChangeRequest(ctx context.Context, session *domain.Session, requestID int32) (*domain.CarChangeRequest, error) {
	if !session.IsAdmin() {
		return nil, domain.Authorizationf("only admins can reject change requests")
	}

	req, err := s.changeRequests.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if req.Status != domain.ChangeRequestStatusPending {
		return nil, domain.Statef("change request %d is already %s", requestID, req.Status)
	}

	req.Status = domain.ChangeRequestStatusRejected
	if err := s.changeRequests.Update(ctx, req); err != nil {
		return nil, err
	}

	logger.Info("change request rejected", "request_id", requestID, "admin_id", session.UserID)

	s.notifyDecision(ctx, req, false)
	return req, nil
}

func (s *changeRequestService) ListPendingRequests(ctx context.Context, session *domain.Session) ([]domain.ChangeRequestSummary, error) {
	if !session.IsAdmin() {
		return nil, domain.Authorizationf("only admins can list change requests")
	}
	return s.changeRequests.ListPending(ctx)
}

// notifyDecision emails the requester, best effort.
func (s *changeRequestService) notifyDecision(ctx context.Context, req *domain.CarChangeRequest, approved bool) {
	user, err := s.users.GetByID(ctx, req.UserID)
	if err != nil {
		logger.Warn("lookup requester for notification failed", "request_id", req.ID, "error", err)
		return
	}
	_ = s.emailSvc.SendChangeRequestDecision(ctx, user, req, approved)
}
