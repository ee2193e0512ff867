// Package memory provides process-local repositories for development and tests.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"exercise-tracker/internal/domain"
	"exercise-tracker/internal/repository"
	"exercise-tracker/internal/util"
)

// Store keeps users and exercises in insertion order.
type Store struct {
	mu        sync.RWMutex
	users     []domain.User
	usernames map[string]struct{}
	exercises []domain.Exercise
}

// NewStore constructs an empty Store.
func NewStore() *Store {
	return &Store{usernames: make(map[string]struct{})}
}

// Users returns a repository.UserRepository backed by the store.
func (s *Store) Users() repository.UserRepository {
	return (*userRepository)(s)
}

// Exercises returns a repository.ExerciseRepository backed by the store.
func (s *Store) Exercises() repository.ExerciseRepository {
	return (*exerciseRepository)(s)
}

type userRepository Store

func (r *userRepository) CreateUser(ctx context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.usernames[user.Username]; taken {
		return fmt.Errorf("create user: %w", util.ErrDuplicateKey)
	}
	user.ID = uuid.NewString()
	r.usernames[user.Username] = struct{}{}
	r.users = append(r.users, *user)
	return nil
}

func (r *userRepository) GetUserByID(ctx context.Context, id string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.ID == id {
			found := u
			return &found, nil
		}
	}
	return nil, util.ErrNotFound
}

func (r *userRepository) ListUsers(ctx context.Context) ([]domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.User, len(r.users))
	copy(out, r.users)
	return out, nil
}

type exerciseRepository Store

func (r *exerciseRepository) CreateExercise(ctx context.Context, exercise *domain.Exercise) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	exercise.ID = uuid.NewString()
	r.exercises = append(r.exercises, *exercise)
	return nil
}

func (r *exerciseRepository) FindExercises(ctx context.Context, filter domain.ExerciseFilter) ([]domain.Exercise, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Exercise, 0)
	for _, e := range r.exercises {
		if filter.Limit > 0 && len(out) == filter.Limit {
			break
		}
		if filter.Matches(e) {
			out = append(out, e)
		}
	}
	return out, nil
}
