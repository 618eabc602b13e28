package service

import (
	"context"

	"drivesync-backend/internal/domain"
	"drivesync-backend/internal/logger"
	"drivesync-backend/internal/repository"
)

type carService struct {
	cars    repository.CarRepository
	rentals repository.RentalRepository
}

func NewCarService(cars repository.CarRepository, rentals repository.RentalRepository) CarService {
	return &carService{cars: cars, rentals: rentals}
}

func (s *carService) ListCars(ctx context.Context) ([]domain.Car, error) {
	return s.cars.List(ctx)
}

func (s *carService) GetCar(ctx context.Context, id int32) (*domain.Car, error) {
	return s.cars.GetByID(ctx, id)
}

// SetCarStatus lets an admin move a car between Available and Maintenance.
// A car with an active rental stays In Use until the rental ends.
func (s *carService) SetCarStatus(ctx context.Context, session *domain.Session, carID int32, status domain.CarStatus) (*domain.Car, error) {
	if !session.IsAdmin() {
		return nil, domain.Authorizationf("only admins can change car status")
	}
	if !domain.ValidCarStatus(status) {
		return nil, domain.Validationf("invalid car status %q", status)
	}

	car, err := s.cars.GetByID(ctx, carID)
	if err != nil {
		return nil, err
	}

	if status != domain.CarStatusInUse {
		active, err := s.rentals.GetActiveByCar(ctx, carID)
		if err != nil {
			return nil, err
		}
		if active != nil {
			return nil, domain.Statef("car %d has an active rental", carID)
		}
	}

	if err := s.cars.UpdateStatus(ctx, carID, status); err != nil {
		return nil, err
	}
	car.Status = status

	logger.Info("car status changed", "car_id", carID, "status", status, "admin_id", session.UserID)
	return car, nil
}
