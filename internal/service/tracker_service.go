// internal/service/tracker_service.go
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"exercise-tracker/internal/domain"
	"exercise-tracker/internal/observability"
	"exercise-tracker/internal/repository"
	"exercise-tracker/internal/util"
)

// TrackerService defines the business operations of the exercise tracker.
type TrackerService interface {
	CreateUser(ctx context.Context, username string) (*domain.User, error)
	ListUsers(ctx context.Context) ([]domain.User, error)
	AddExercise(ctx context.Context, userID string, input AddExerciseInput) (*domain.User, *domain.Exercise, error)
	GetLog(ctx context.Context, userID string, query LogQuery) (*domain.User, []domain.Exercise, error)
	ListExercises(ctx context.Context) ([]domain.Exercise, error)
}

// AddExerciseInput carries a validated add-exercise request.
// A nil Date means "now".
type AddExerciseInput struct {
	Description string
	Duration    decimal.Decimal
	Date        *time.Time
}

// LogQuery carries the optional bounds of a log request. Limit <= 0 means unlimited.
type LogQuery struct {
	From  *time.Time
	To    *time.Time
	Limit int
}

// Option customises a trackerService.
type Option func(*trackerService)

// WithClock replaces the clock used to stamp exercises recorded without a date.
func WithClock(now func() time.Time) Option {
	return func(s *trackerService) {
		s.now = now
	}
}

// trackerService implements the TrackerService interface.
type trackerService struct {
	userRepo     repository.UserRepository
	exerciseRepo repository.ExerciseRepository
	now          func() time.Time
}

// NewTrackerService creates a new instance of TrackerService.
func NewTrackerService(userRepo repository.UserRepository, exerciseRepo repository.ExerciseRepository, opts ...Option) TrackerService {
	s := &trackerService{
		userRepo:     userRepo,
		exerciseRepo: exerciseRepo,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateUser registers a new user with a unique username.
func (s *trackerService) CreateUser(ctx context.Context, username string) (*domain.User, error) {
	if username == "" {
		return nil, fmt.Errorf("create user: username is required: %w", util.ErrValidation)
	}

	user := domain.NewUser(username)
	if err := s.userRepo.CreateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("create user %q: %w", username, err)
	}
	observability.RecordUserCreated()
	return user, nil
}

// ListUsers returns all registered users.
func (s *trackerService) ListUsers(ctx context.Context) ([]domain.User, error) {
	users, err := s.userRepo.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// AddExercise records an exercise for the user identified by userID.
// The username is copied onto the exercise; nothing is stored when the user is unknown.
func (s *trackerService) AddExercise(ctx context.Context, userID string, input AddExerciseInput) (*domain.User, *domain.Exercise, error) {
	if input.Description == "" {
		return nil, nil, fmt.Errorf("add exercise: description is required: %w", util.ErrValidation)
	}
	if err := domain.CheckDuration(input.Duration); err != nil {
		return nil, nil, fmt.Errorf("add exercise: %v: %w", err, util.ErrValidation)
	}

	user, err := s.lookupUser(ctx, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("add exercise: %w", err)
	}

	date := s.now().UTC()
	if input.Date != nil {
		date = input.Date.UTC()
	}

	exercise := domain.NewExercise(user, input.Description, input.Duration, date)
	if err := s.exerciseRepo.CreateExercise(ctx, exercise); err != nil {
		return nil, nil, fmt.Errorf("add exercise for %q: %w", user.Username, err)
	}
	observability.RecordExercise(s.now())
	return user, exercise, nil
}

// GetLog returns the user's exercises within the query bounds.
func (s *trackerService) GetLog(ctx context.Context, userID string, query LogQuery) (*domain.User, []domain.Exercise, error) {
	user, err := s.lookupUser(ctx, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("get log: %w", err)
	}

	limit := query.Limit
	if limit < 0 {
		limit = 0
	}
	exercises, err := s.exerciseRepo.FindExercises(ctx, domain.ExerciseFilter{
		Username: user.Username,
		From:     query.From,
		To:       query.To,
		Limit:    limit,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("get log for %q: %w", user.Username, err)
	}
	return user, exercises, nil
}

// ListExercises returns every stored exercise.
func (s *trackerService) ListExercises(ctx context.Context) ([]domain.Exercise, error) {
	exercises, err := s.exerciseRepo.FindExercises(ctx, domain.ExerciseFilter{})
	if err != nil {
		return nil, fmt.Errorf("list exercises: %w", err)
	}
	return exercises, nil
}

func (s *trackerService) lookupUser(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, util.ErrNotFound) {
			return nil, util.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to look up user %q: %w", userID, err)
	}
	return user, nil
}
