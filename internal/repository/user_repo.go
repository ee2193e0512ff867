// internal/repository/user_repo.go
package repository

import (
	"context"

	"exercise-tracker/internal/domain"
)

// UserRepository defines the interface for user data operations.
type UserRepository interface {
	// CreateUser stores a new user and sets its ID. A taken username yields util.ErrDuplicateKey.
	CreateUser(ctx context.Context, user *domain.User) error
	// GetUserByID retrieves a user by ID, or util.ErrNotFound.
	GetUserByID(ctx context.Context, id string) (*domain.User, error)
	// ListUsers returns all users in insertion order.
	ListUsers(ctx context.Context) ([]domain.User, error)
}
