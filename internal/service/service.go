package service

import (
	"context"
	"time"

	"drivesync-backend/internal/domain"
)

// TokenPair is returned by login and refresh.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// AuthService handles registration and token issuance.
type AuthService interface {
	Register(ctx context.Context, username, password string) (*domain.User, error)
	Login(ctx context.Context, username, password string) (*domain.User, *TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (*TokenPair, error)
}

// UserService handles profile management.
type UserService interface {
	GetProfile(ctx context.Context, session *domain.Session) (*domain.User, error)
	UpdateProfile(ctx context.Context, session *domain.Session, params UpdateProfileParams) (*domain.User, error)
}

type UpdateProfileParams struct {
	Name    string
	Phone   string
	Address string
	Email   string
}

// CarService handles the car catalog.
type CarService interface {
	ListCars(ctx context.Context) ([]domain.Car, error)
	GetCar(ctx context.Context, id int32) (*domain.Car, error)
	SetCarStatus(ctx context.Context, session *domain.Session, carID int32, status domain.CarStatus) (*domain.Car, error)
}

// RentalService handles the booking lifecycle.
type RentalService interface {
	CreateRental(ctx context.Context, session *domain.Session, params CreateRentalParams) (*domain.Rental, error)
	EditTiming(ctx context.Context, session *domain.Session, rentalID int32, start, end time.Time) (*domain.Rental, error)
	EditDeliveryInfo(ctx context.Context, session *domain.Session, rentalID int32, mode domain.RentalMode, deliveryLocation string) (*domain.Rental, error)
	CompleteRental(ctx context.Context, session *domain.Session, rentalID int32) (*domain.Rental, error)
	CancelRental(ctx context.Context, session *domain.Session, rentalID int32) (*domain.Rental, error)
	ListRentals(ctx context.Context, session *domain.Session, userID int32) ([]domain.Rental, error)
	GetRental(ctx context.Context, session *domain.Session, rentalID int32) (*domain.Rental, error)
	ListPayments(ctx context.Context, session *domain.Session, rentalID int32) ([]domain.Payment, error)
}

type CreateRentalParams struct {
	CarID            int32
	Start            time.Time
	End              time.Time
	Mode             domain.RentalMode
	DeliveryLocation string
}

// ChangeRequestService handles the car change approval workflow.
type ChangeRequestService interface {
	RequestCarChange(ctx context.Context, session *domain.Session, rentalID, newCarID int32) (*domain.CarChangeRequest, error)
	ApproveChangeRequest(ctx context.Context, session *domain.Session, requestID int32) (*domain.CarChangeRequest, error)
	RejectChangeRequest(ctx context.Context, session *domain.Session, requestID int32) (*domain.CarChangeRequest, error)
	ListPendingRequests(ctx context.Context, session *domain.Session) ([]domain.ChangeRequestSummary, error)
}

// EmailService sends customer notifications. Implementations must not block
// the calling workflow on delivery failures.
type EmailService interface {
	SendBookingReceipt(ctx context.Context, user *domain.User, rental *domain.Rental, car *domain.Car, payment *domain.Payment) error
	SendChangeRequestDecision(ctx context.Context, user *domain.User, request *domain.CarChangeRequest, approved bool) error
}
