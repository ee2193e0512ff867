package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"exercise-tracker/internal/domain"
	"exercise-tracker/internal/repository"
	"exercise-tracker/internal/util"
)

// ExerciseRepository implements repository.ExerciseRepository on a MongoDB collection.
type ExerciseRepository struct {
	coll *mongo.Collection
}

// NewExerciseRepository creates a new ExerciseRepository.
func NewExerciseRepository(db *mongo.Database) repository.ExerciseRepository {
	return &ExerciseRepository{coll: db.Collection(exercisesCollection)}
}

// CreateExercise inserts a new exercise document.
func (r *ExerciseRepository) CreateExercise(ctx context.Context, exercise *domain.Exercise) error {
	doc, err := newExerciseDocument(exercise)
	if err != nil {
		return fmt.Errorf("create exercise: %w", err)
	}
	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return translateError("create exercise", err)
	}
	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return fmt.Errorf("%w: create exercise: unexpected id type %T", util.ErrStorage, res.InsertedID)
	}
	exercise.ID = oid.Hex()
	return nil
}

// FindExercises returns matching exercise documents ordered by _id.
func (r *ExerciseRepository) FindExercises(ctx context.Context, filter domain.ExerciseFilter) ([]domain.Exercise, error) {
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	if filter.Limit > 0 {
		opts.SetLimit(int64(filter.Limit))
	}

	cursor, err := r.coll.Find(ctx, buildFilter(filter), opts)
	if err != nil {
		return nil, translateError("find exercises", err)
	}
	var docs []exerciseDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, translateError("find exercises", err)
	}

	exercises := make([]domain.Exercise, 0, len(docs))
	for _, doc := range docs {
		exercise, err := doc.toDomain()
		if err != nil {
			return nil, err
		}
		exercises = append(exercises, exercise)
	}
	return exercises, nil
}

func buildFilter(filter domain.ExerciseFilter) bson.M {
	query := bson.M{}
	if filter.Username != "" {
		query["username"] = filter.Username
	}
	dateOpts := bson.M{}
	if filter.From != nil {
		dateOpts["$gte"] = *filter.From
	}
	if filter.To != nil {
		dateOpts["$lte"] = *filter.To
	}
	if len(dateOpts) > 0 {
		query["date"] = dateOpts
	}
	return query
}
