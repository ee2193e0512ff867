// internal/repository/exercise_repo.go
package repository

import (
	"context"

	"exercise-tracker/internal/domain"
)

// ExerciseRepository defines the interface for exercise data operations.
type ExerciseRepository interface {
	// CreateExercise stores a new exercise and sets its ID.
	CreateExercise(ctx context.Context, exercise *domain.Exercise) error
	// FindExercises returns exercises matching filter in insertion order,
	// capped at filter.Limit rows when it is positive.
	FindExercises(ctx context.Context, filter domain.ExerciseFilter) ([]domain.Exercise, error)
}
