package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"drivesync-backend/internal/domain"
	"drivesync-backend/internal/repository"
)

type userRepository struct {
	db DBTX
}

func NewUserRepository(db DBTX) repository.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, u *domain.User) error {
	query := `INSERT INTO users (username, password_hash, name, phone, address, email, role, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`
	err := r.db.QueryRowContext(ctx, query, u.Username, u.PasswordHash, u.Name, u.Phone, u.Address, u.Email, u.Role, time.Now()).Scan(&u.ID)
	if err != nil {
		return domain.Infrastructure("insert user", err)
	}
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id int32) (*domain.User, error) {
	u := &domain.User{}
	query := `SELECT id, username, password_hash, name, phone, address, email, role, created_on FROM users WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Name, &u.Phone, &u.Address, &u.Email, &u.Role, &u.CreatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NotFoundf("user %d not found", id)
	}
	if err != nil {
		return nil, domain.Infrastructure("query user", err)
	}
	return u, nil
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	u := &domain.User{}
	query := `SELECT id, username, password_hash, name, phone, address, email, role, created_on FROM users WHERE username = $1`
	err := r.db.QueryRowContext(ctx, query, username).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Name, &u.Phone, &u.Address, &u.Email, &u.Role, &u.CreatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NotFoundf("user %q not found", username)
	}
	if err != nil {
		return nil, domain.Infrastructure("query user", err)
	}
	return u, nil
}

func (r *userRepository) Update(ctx context.Context, u *domain.User) error {
	query := `UPDATE users SET name=$1, phone=$2, address=$3, email=$4 WHERE id=$5`
	if _, err := r.db.ExecContext(ctx, query, u.Name, u.Phone, u.Address, u.Email, u.ID); err != nil {
		return domain.Infrastructure("update user", err)
	}
	return nil
}
