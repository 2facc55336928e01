package db

import (
	"context"
	"errors"

	"github.com/arzan03/FilesManager/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// FileRepository reads and writes file records in the files collection.
type FileRepository struct {
	col *mongo.Collection
}

// NewFileRepository returns a repository over m's files collection.
func NewFileRepository(m *Mongo) *FileRepository {
	return &FileRepository{col: m.Files()}
}

// FindByID returns the file with id, or ErrNotFound.
func (r *FileRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.File, error) {
	var f models.File
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&f)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &f, nil
}

// Insert stores f and returns the assigned id.
func (r *FileRepository) Insert(ctx context.Context, f *models.File) (primitive.ObjectID, error) {
	res, err := r.col.InsertOne(ctx, f)
	if err != nil {
		return primitive.NilObjectID, err
	}
	return res.InsertedID.(primitive.ObjectID), nil
}

// ListByParent pages through owner's files directly under parent in
// insertion order.
func (r *FileRepository) ListByParent(ctx context.Context, owner, parent primitive.ObjectID, skip, limit int64) ([]models.File, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"userId": owner, "parentId": parent}}},
		{{Key: "$sort", Value: bson.M{"_id": 1}}},
		{{Key: "$skip", Value: skip}},
		{{Key: "$limit", Value: limit}},
	}

	cursor, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	files := make([]models.File, 0, limit)
	if err := cursor.All(ctx, &files); err != nil {
		return nil, err
	}
	return files, nil
}

// SetPublic updates isPublic and returns the document after the update.
func (r *FileRepository) SetPublic(ctx context.Context, id primitive.ObjectID, public bool) (*models.File, error) {
	var f models.File
	err := r.col.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"isPublic": public}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&f)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &f, nil
}

// Count returns the number of file records.
func (r *FileRepository) Count(ctx context.Context) (int64, error) {
	return r.col.CountDocuments(ctx, bson.M{})
}
