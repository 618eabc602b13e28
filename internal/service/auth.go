package service

import (
	"context"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"drivesync-backend/internal/domain"
	"drivesync-backend/internal/logger"
	"drivesync-backend/internal/repository"
	"drivesync-backend/internal/security"
)

type authService struct {
	users  repository.UserRepository
	tokens security.TokenManager
}

func NewAuthService(users repository.UserRepository, tokens security.TokenManager) AuthService {
	return &authService{users: users, tokens: tokens}
}

func (s *authService) Register(ctx context.Context, username, password string) (*domain.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, domain.Validationf("username and password are required")
	}

	existing, err := s.users.GetByUsername(ctx, username)
	if err != nil && !domain.IsKind(err, domain.KindNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, domain.Conflictf("username %q is already taken", username)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, domain.Infrastructure("hash password", err)
	}

	user := &domain.User{
		Username:     username,
		PasswordHash: string(hash),
		Role:         domain.RoleUser,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	logger.Info("user registered", "user_id", user.ID, "username", user.Username)
	return user, nil
}

func (s *authService) Login(ctx context.Context, username, password string) (*domain.User, *TokenPair, error) {
	user, err := s.users.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if domain.IsKind(err, domain.KindNotFound) {
			return nil, nil, domain.Authorizationf("invalid username or password")
		}
		return nil, nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, nil, domain.Authorizationf("invalid username or password")
	}

	pair, err := s.issueTokens(user)
	if err != nil {
		return nil, nil, err
	}

	logger.Info("user logged in", "user_id", user.ID, "username", user.Username)
	return user, pair, nil
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	claims, err := s.tokens.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, domain.Authorizationf("invalid refresh token")
	}

	// Re-read the user so role changes since issuance take effect.
	user, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if domain.IsKind(err, domain.KindNotFound) {
			return nil, domain.Authorizationf("invalid refresh token")
		}
		return nil, err
	}

	return s.issueTokens(user)
}

func (s *authService) issueTokens(user *domain.User) (*TokenPair, error) {
	access, err := s.tokens.GenerateAccessToken(user)
	if err != nil {
		return nil, domain.Infrastructure("generate access token", err)
	}
	refresh, err := s.tokens.GenerateRefreshToken(user)
	if err != nil {
		return nil, domain.Infrastructure("generate refresh token", err)
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
