// internal/repository/postgres/exercise_pg.go
package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"exercise-tracker/internal/domain"
	"exercise-tracker/internal/repository"
)

// ExerciseRepository implements repository.ExerciseRepository for PostgreSQL.
type ExerciseRepository struct {
	q DBExecutor
}

// NewExerciseRepository creates a new ExerciseRepository.
func NewExerciseRepository(q DBExecutor) repository.ExerciseRepository {
	return &ExerciseRepository{q: q}
}

// CreateExercise inserts a new exercise record.
func (r *ExerciseRepository) CreateExercise(ctx context.Context, exercise *domain.Exercise) error {
	id := uuid.NewString()
	query := `INSERT INTO exercises (id, username, description, duration, date)
              VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.ExecContext(ctx, query,
		id,
		exercise.Username,
		exercise.Description,
		exercise.Duration,
		exercise.Date,
	)
	if err != nil {
		return translateError("create exercise", err)
	}
	exercise.ID = id
	return nil
}

// FindExercises retrieves exercises matching the filter in insertion order.
func (r *ExerciseRepository) FindExercises(ctx context.Context, filter domain.ExerciseFilter) ([]domain.Exercise, error) {
	query, args := buildFindQuery(filter)

	exercises := []domain.Exercise{}
	if err := r.q.SelectContext(ctx, &exercises, query, args...); err != nil {
		return nil, translateError("find exercises", err)
	}
	for i := range exercises {
		exercises[i].Date = exercises[i].Date.UTC()
	}
	return exercises, nil
}

func buildFindQuery(filter domain.ExerciseFilter) (string, []interface{}) {
	var (
		conditions []string
		args       []interface{}
	)
	if filter.Username != "" {
		args = append(args, filter.Username)
		conditions = append(conditions, fmt.Sprintf("username = $%d", len(args)))
	}
	if filter.From != nil {
		args = append(args, *filter.From)
		conditions = append(conditions, fmt.Sprintf("date >= $%d", len(args)))
	}
	if filter.To != nil {
		args = append(args, *filter.To)
		conditions = append(conditions, fmt.Sprintf("date <= $%d", len(args)))
	}

	var sb strings.Builder
	sb.WriteString(`SELECT id, username, description, duration, date FROM exercises`)
	if len(conditions) > 0 {
		sb.WriteString(" WHERE ")
		sb.WriteString(strings.Join(conditions, " AND "))
	}
	sb.WriteString(" ORDER BY seq")
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		fmt.Fprintf(&sb, " LIMIT $%d", len(args))
	}
	return sb.String(), args
}
