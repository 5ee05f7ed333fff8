// internal/repository/postgres/user_pg.go
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"user-registration/internal/domain"
	"user-registration/internal/repository"
	"user-registration/internal/util"
)

const uniqueViolation = pq.ErrorCode("23505")

// Constraint names from migrations/00001_create_users.sql.
const (
	usernameConstraint = "users_username_key"
	emailConstraint    = "users_email_key"
)

// UserRepository implements repository.UserRepository for PostgreSQL.
// It holds no connection; every method receives a DBExecutor.
type UserRepository struct{}

// NewUserRepository creates a new UserRepository.
func NewUserRepository() repository.UserRepository {
	return &UserRepository{}
}

// FindByUsernameOrEmail retrieves the users holding either value.
func (r *UserRepository) FindByUsernameOrEmail(ctx context.Context, q repository.DBExecutor, username, email string) ([]domain.User, error) {
	users := []domain.User{}
	query := `SELECT id, username, email, password_hash, full_name, phone, created_at, updated_at
              FROM users WHERE username = $1 OR email = $2`
	if err := q.SelectContext(ctx, &users, query, username, email); err != nil {
		return nil, fmt.Errorf("failed to look up users by username '%s' or email '%s': %w", username, email, err)
	}
	return users, nil
}

// CreateUser inserts a new user and stores the generated ID on it.
func (r *UserRepository) CreateUser(ctx context.Context, q repository.DBExecutor, user *domain.User) error {
	query := `INSERT INTO users (username, email, password_hash, full_name, phone, created_at, updated_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	err := q.QueryRowContext(ctx, query,
		user.Username,
		user.Email,
		user.PasswordHash,
		user.FullName,
		user.Phone,
		user.CreatedAt,
		user.UpdatedAt,
	).Scan(&user.ID)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", translateError(err))
	}
	return nil
}

// translateError maps unique-constraint violations onto domain sentinels.
func translateError(err error) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) || pqErr.Code != uniqueViolation {
		return err
	}
	switch pqErr.Constraint {
	case usernameConstraint:
		return util.ErrDuplicateUsername
	case emailConstraint:
		return util.ErrDuplicateEmail
	default:
		return err
	}
}
