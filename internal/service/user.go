package service

import (
	"context"
	"strings"

	"drivesync-backend/internal/domain"
	"drivesync-backend/internal/repository"
)

type userService struct {
	users repository.UserRepository
}

func NewUserService(users repository.UserRepository) UserService {
	return &userService{users: users}
}

func (s *userService) GetProfile(ctx context.Context, session *domain.Session) (*domain.User, error) {
	return s.users.GetByID(ctx, session.UserID)
}

// UpdateProfile saves the contact details required before a user may book.
// Name, phone and address are all mandatory; email is optional and only
// used for notifications.
func (s *userService) UpdateProfile(ctx context.Context, session *domain.Session, params UpdateProfileParams) (*domain.User, error) {
	name := strings.TrimSpace(params.Name)
	phone := strings.TrimSpace(params.Phone)
	address := strings.TrimSpace(params.Address)
	if name == "" || phone == "" || address == "" {
		return nil, domain.Validationf("name, phone and address are required")
	}

	user, err := s.users.GetByID(ctx, session.UserID)
	if err != nil {
		return nil, err
	}

	user.Name = name
	user.Phone = phone
	user.Address = address
	user.Email = strings.TrimSpace(params.Email)

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
