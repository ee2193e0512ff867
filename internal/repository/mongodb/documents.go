// Package mongodb stores users and exercises as MongoDB documents.
package mongodb

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"exercise-tracker/internal/domain"
	"exercise-tracker/internal/util"
)

const (
	usersCollection     = "users"
	exercisesCollection = "exercises"
)

type userDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Username  string             `bson:"username"`
	CreatedAt time.Time          `bson:"createdAt"`
}

func (d userDocument) toDomain() domain.User {
	return domain.User{
		ID:        d.ID.Hex(),
		Username:  d.Username,
		CreatedAt: d.CreatedAt.UTC(),
	}
}

// Duration is stored as a BSON double, like the numbers other clients write.
type exerciseDocument struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Username    string             `bson:"username"`
	Description string             `bson:"description"`
	Duration    float64            `bson:"duration"`
	Date        time.Time          `bson:"date"`
}

func newExerciseDocument(e *domain.Exercise) (exerciseDocument, error) {
	if err := domain.CheckDuration(e.Duration); err != nil {
		return exerciseDocument{}, fmt.Errorf("%w: %w", util.ErrValidation, err)
	}
	return exerciseDocument{
		Username:    e.Username,
		Description: e.Description,
		Duration:    e.Duration.InexactFloat64(),
		Date:        e.Date.UTC(),
	}, nil
}

// toDomain fails on NaN and infinite durations rather than panicking in decimal.
func (d exerciseDocument) toDomain() (domain.Exercise, error) {
	if math.IsNaN(d.Duration) || math.IsInf(d.Duration, 0) {
		return domain.Exercise{}, fmt.Errorf("%w: exercise %s has non-finite duration", util.ErrStorage, d.ID.Hex())
	}
	return domain.Exercise{
		ID:          d.ID.Hex(),
		Username:    d.Username,
		Description: d.Description,
		Duration:    decimal.NewFromFloat(d.Duration),
		Date:        d.Date.UTC(),
	}, nil
}

// EnsureIndexes creates the unique username index and the log lookup index.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(usersCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create users index: %w", err)
	}

	_, err = db.Collection(exercisesCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "username", Value: 1}, {Key: "date", Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("failed to create exercises index: %w", err)
	}
	return nil
}

func translateError(op string, err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return util.ErrNotFound
	}
	if mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("%s: %w", op, util.ErrDuplicateKey)
	}
	return fmt.Errorf("%w: %s: %w", util.ErrStorage, op, err)
}
