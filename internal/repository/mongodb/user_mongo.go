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

// UserRepository implements repository.UserRepository on a MongoDB collection.
type UserRepository struct {
	coll *mongo.Collection
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(db *mongo.Database) repository.UserRepository {
	return &UserRepository{coll: db.Collection(usersCollection)}
}

// CreateUser inserts a new user document.
func (r *UserRepository) CreateUser(ctx context.Context, user *domain.User) error {
	doc := userDocument{Username: user.Username, CreatedAt: user.CreatedAt}
	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return translateError("create user", err)
	}
	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return fmt.Errorf("%w: create user: unexpected id type %T", util.ErrStorage, res.InsertedID)
	}
	user.ID = oid.Hex()
	return nil
}

// GetUserByID retrieves a user by ObjectID hex. Malformed ids are reported as not found.
func (r *UserRepository) GetUserByID(ctx context.Context, id string) (*domain.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, util.ErrNotFound
	}

	var doc userDocument
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		return nil, translateError(fmt.Sprintf("get user %q", id), err)
	}
	user := doc.toDomain()
	return &user, nil
}

// ListUsers returns every user ordered by _id, which follows insertion order.
func (r *UserRepository) ListUsers(ctx context.Context) ([]domain.User, error) {
	cursor, err := r.coll.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, translateError("list users", err)
	}
	var docs []userDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, translateError("list users", err)
	}

	users := make([]domain.User, 0, len(docs))
	for _, doc := range docs {
		users = append(users, doc.toDomain())
	}
	return users, nil
}
