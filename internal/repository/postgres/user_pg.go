// internal/repository/postgres/user_pg.go
package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"exercise-tracker/internal/domain"
	"exercise-tracker/internal/repository"
)

// UserRepository implements repository.UserRepository for PostgreSQL.
type UserRepository struct {
	q DBExecutor
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(q DBExecutor) repository.UserRepository {
	return &UserRepository{q: q}
}

// CreateUser inserts a new user.
func (r *UserRepository) CreateUser(ctx context.Context, user *domain.User) error {
	id := uuid.NewString()
	query := `INSERT INTO users (id, username, created_at) VALUES ($1, $2, $3)`
	if _, err := r.q.ExecContext(ctx, query, id, user.Username, user.CreatedAt); err != nil {
		return translateError("create user", err)
	}
	user.ID = id
	return nil
}

// GetUserByID retrieves a user by their ID.
func (r *UserRepository) GetUserByID(ctx context.Context, id string) (*domain.User, error) {
	var user domain.User
	query := `SELECT id, username, created_at FROM users WHERE id = $1`
	if err := r.q.GetContext(ctx, &user, query, id); err != nil {
		return nil, translateError(fmt.Sprintf("get user %q", id), err)
	}
	return &user, nil
}

// ListUsers returns every user in insertion order.
func (r *UserRepository) ListUsers(ctx context.Context) ([]domain.User, error) {
	users := []domain.User{}
	query := `SELECT id, username, created_at FROM users ORDER BY seq`
	if err := r.q.SelectContext(ctx, &users, query); err != nil {
		return nil, translateError("list users", err)
	}
	return users, nil
}
