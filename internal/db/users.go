package db

import (
	"context"
	"errors"

	"github.com/arzan03/FilesManager/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// UserRepository reads and writes the users collection.
type UserRepository struct {
	col *mongo.Collection
}

// NewUserRepository returns a repository over m's users collection.
func NewUserRepository(m *Mongo) *UserRepository {
	return &UserRepository{col: m.Users()}
}

// FindByEmail returns the user registered with email, or ErrNotFound.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

// FindByID returns the user with id, or ErrNotFound.
func (r *UserRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *UserRepository) findOne(ctx context.Context, filter bson.M) (*models.User, error) {
	var u models.User
	err := r.col.FindOne(ctx, filter).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Insert stores u and returns the assigned id. A taken email yields ErrDuplicate.
func (r *UserRepository) Insert(ctx context.Context, u *models.User) (primitive.ObjectID, error) {
	res, err := r.col.InsertOne(ctx, u)
	if mongo.IsDuplicateKeyError(err) {
		return primitive.NilObjectID, ErrDuplicate
	}
	if err != nil {
		return primitive.NilObjectID, err
	}
	return res.InsertedID.(primitive.ObjectID), nil
}

// Count returns the number of registered users.
func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	return r.col.CountDocuments(ctx, bson.M{})
}
