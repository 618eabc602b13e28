package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"drivesync-backend/internal/domain"
	"drivesync-backend/internal/logger"
	"drivesync-backend/internal/repository"
	"drivesync-backend/internal/utils"
)

type rentalService struct {
	store            repository.Atomizer
	users            repository.UserRepository
	cars             repository.CarRepository
	rentals          repository.RentalRepository
	payments         repository.PaymentRepository
	changeRequests   repository.ChangeRequestRepository
	emailSvc         EmailService
	deliveryFeeCents int32
}

func NewRentalService(
	store repository.Atomizer,
	repos repository.Repos,
	emailSvc EmailService,
	deliveryFeeCents int32,
) RentalService {
	return &rentalService{
		store:            store,
		users:            repos.Users,
		cars:             repos.Cars,
		rentals:          repos.Rentals,
		payments:         repos.Payments,
		changeRequests:   repos.ChangeRequests,
		emailSvc:         emailSvc,
		deliveryFeeCents: deliveryFeeCents,
	}
}

// CreateRental books a car. Inside one transaction it locks the car row,
// verifies availability, creates the Active rental, flips the car to In Use
// and records the payment. The price is snapshotted here and never changes.
func (s *rentalService) CreateRental(ctx context.Context, session *domain.Session, params CreateRentalParams) (*domain.Rental, error) {
	user, err := s.users.GetByID(ctx, session.UserID)
	if err != nil {
		return nil, err
	}
	if !user.ProfileComplete() {
		return nil, domain.Validationf("complete your profile before booking")
	}

	if err := validateTiming(params.Start, params.End); err != nil {
		return nil, err
	}
	mode, location, err := validateDelivery(params.Mode, params.DeliveryLocation)
	if err != nil {
		return nil, err
	}

	var (
		rental  *domain.Rental
		payment *domain.Payment
		car     *domain.Car
	)
	err = s.store.Atomic(ctx, func(r repository.Repos) error {
		car, err = r.Cars.GetByIDForUpdate(ctx, params.CarID)
		if err != nil {
			return err
		}
		if car.Status != domain.CarStatusAvailable {
			return domain.Validationf("car %q is not available", car.Name)
		}

		hours := utils.RentalHours(params.Start, params.End)
		fee := int32(0)
		if mode == domain.RentalModeDelivery {
			fee = s.deliveryFeeCents
		}

		rental = &domain.Rental{
			UserID:           session.UserID,
			CarID:            car.ID,
			StartTime:        params.Start,
			EndTime:          params.End,
			HoursRented:      hours,
			Mode:             mode,
			DeliveryLocation: location,
			DeliveryFeeCents: fee,
			TotalCostCents:   utils.RentalCost(car.HourlyRateCents, hours) + fee,
			Status:           domain.RentalStatusActive,
		}
		if err := r.Rentals.Create(ctx, rental); err != nil {
			return err
		}
		if err := r.Cars.UpdateStatus(ctx, car.ID, domain.CarStatusInUse); err != nil {
			return err
		}

		payment = &domain.Payment{
			RentalID:    rental.ID,
			Reference:   uuid.NewString(),
			AmountCents: rental.TotalCostCents,
		}
		return r.Payments.Create(ctx, payment)
	})
	if err != nil {
		return nil, err
	}

	logger.Info("rental created",
		"rental_id", rental.ID, "user_id", session.UserID, "car_id", car.ID,
		"hours", rental.HoursRented, "total_cents", rental.TotalCostCents)

	// Best effort, booking already committed.
	_ = s.emailSvc.SendBookingReceipt(ctx, user, rental, car, payment)

	return rental, nil
}

// EditTiming changes the start and end of an active rental. Billable hours
// are recomputed for display but the charged total is not.
func (s *rentalService) EditTiming(ctx context.Context, session *domain.Session, rentalID int32, start, end time.Time) (*domain.Rental, error) {
	if err := validateTiming(start, end); err != nil {
		return nil, err
	}

	rental, err := s.ownedActiveRental(ctx, session, rentalID)
	if err != nil {
		return nil, err
	}

	rental.StartTime = start
	rental.EndTime = end
	rental.HoursRented = utils.RentalHours(start, end)
	if err := s.rentals.Update(ctx, rental); err != nil {
		return nil, err
	}
	return rental, nil
}

func (s *rentalService) EditDeliveryInfo(ctx context.Context, session *domain.Session, rentalID int32, mode domain.RentalMode, deliveryLocation string) (*domain.Rental, error) {
	mode, location, err := validateDelivery(mode, deliveryLocation)
	if err != nil {
		return nil, err
	}

	rental, err := s.ownedActiveRental(ctx, session, rentalID)
	if err != nil {
		return nil, err
	}

	rental.Mode = mode
	rental.DeliveryLocation = location
	if err := s.rentals.Update(ctx, rental); err != nil {
		return nil, err
	}
	return rental, nil
}

func (s *rentalService) CompleteRental(ctx context.Context, session *domain.Session, rentalID int32) (*domain.Rental, error) {
	return s.finishRental(ctx, session, rentalID, domain.RentalStatusCompleted)
}

func (s *rentalService) CancelRental(ctx context.Context, session *domain.Session, rentalID int32) (*domain.Rental, error) {
	return s.finishRental(ctx, session, rentalID, domain.RentalStatusCancelled)
}

// finishRental moves an active rental to a terminal status, frees the car
// and rejects any pending change request, all in one transaction.
func (s *rentalService) finishRental(ctx context.Context, session *domain.Session, rentalID int32, target domain.RentalStatus) (*domain.Rental, error) {
	var rental *domain.Rental
	err := s.store.Atomic(ctx, func(r repository.Repos) error {
		var err error
		rental, err = r.Rentals.GetByID(ctx, rentalID)
		if err != nil {
			return err
		}
		if rental.UserID != session.UserID && !session.IsAdmin() {
			return domain.Authorizationf("rental %d does not belong to you", rentalID)
		}
		if rental.Status != domain.RentalStatusActive {
			return domain.Statef("rental %d is already %s", rentalID, rental.Status)
		}

		rental.Status = target
		if err := r.Rentals.Update(ctx, rental); err != nil {
			return err
		}
		if err := r.Cars.UpdateStatus(ctx, rental.CarID, domain.CarStatusAvailable); err != nil {
			return err
		}

		pending, err := r.ChangeRequests.GetPendingByRental(ctx, rentalID)
		if err != nil {
			return err
		}
		if pending != nil {
			pending.Status = domain.ChangeRequestStatusRejected
			if err := r.ChangeRequests.Update(ctx, pending); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("rental finished", "rental_id", rentalID, "status", target, "by_user", session.UserID)
	return rental, nil
}

func (s *rentalService) ListRentals(ctx context.Context, session *domain.Session, userID int32) ([]domain.Rental, error) {
	if userID != session.UserID && !session.IsAdmin() {
		return nil, domain.Authorizationf("cannot list rentals of another user")
	}
	return s.rentals.ListByUser(ctx, userID)
}

func (s *rentalService) GetRental(ctx context.Context, session *domain.Session, rentalID int32) (*domain.Rental, error) {
	rental, err := s.rentals.GetByID(ctx, rentalID)
	if err != nil {
		return nil, err
	}
	if rental.UserID != session.UserID && !session.IsAdmin() {
		return nil, domain.Authorizationf("rental %d does not belong to you", rentalID)
	}
	return rental, nil
}

func (s *rentalService) ListPayments(ctx context.Context, session *domain.Session, rentalID int32) ([]domain.Payment, error) {
	if _, err := s.GetRental(ctx, session, rentalID); err != nil {
		return nil, err
	}
	return s.payments.ListByRental(ctx, rentalID)
}

// ownedActiveRental loads a rental and checks it belongs to the caller and
// is still Active. Used by the edit operations, which owners only may call.
func (s *rentalService) ownedActiveRental(ctx context.Context, session *domain.Session, rentalID int32) (*domain.Rental, error) {
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
	return rental, nil
}

func validateTiming(start, end time.Time) error {
	if start.IsZero() || end.IsZero() {
		return domain.Validationf("start and end times are required")
	}
	if !end.After(start) {
		return domain.Validationf("end time must be after start time")
	}
	return nil
}

func validateDelivery(mode domain.RentalMode, location string) (domain.RentalMode, string, error) {
	location = strings.TrimSpace(location)
	switch mode {
	case domain.RentalModePickup:
		return mode, "", nil
	case domain.RentalModeDelivery:
		if location == "" {
			return "", "", domain.Validationf("delivery location is required for delivery mode")
		}
		return mode, location, nil
	default:
		return "", "", domain.Validationf("invalid rental mode %q", mode)
	}
}
