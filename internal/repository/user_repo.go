// internal/repository/user_repo.go
package repository

import (
	"context"

	"user-registration/internal/domain"
)

// UserRepository defines the interface for user data operations.
type UserRepository interface {
	// FindByUsernameOrEmail returns every user whose username or email matches.
	// An empty slice means neither value is taken.
	FindByUsernameOrEmail(ctx context.Context, q DBExecutor, username, email string) ([]domain.User, error)
	// CreateUser adds a new user to the database using the provided DBExecutor.
	// A uniqueness violation yields util.ErrDuplicateUsername or util.ErrDuplicateEmail.
	CreateUser(ctx context.Context, q DBExecutor, user *domain.User) error
}
