package services

import (
	"context"
	"time"

	"github.com/arzan03/FilesManager/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserRepository is the document-store view of the users collection.
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	Insert(ctx context.Context, u *models.User) (primitive.ObjectID, error)
	Count(ctx context.Context) (int64, error)
}

// FileRepository is the document-store view of the files collection.
type FileRepository interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.File, error)
	Insert(ctx context.Context, f *models.File) (primitive.ObjectID, error)
	ListByParent(ctx context.Context, owner, parent primitive.ObjectID, skip, limit int64) ([]models.File, error)
	SetPublic(ctx context.Context, id primitive.ObjectID, public bool) (*models.File, error)
	Count(ctx context.Context) (int64, error)
}

// SessionStore maps opaque tokens to user ids with a store-enforced expiry.
type SessionStore interface {
	Get(ctx context.Context, token string) (string, error)
	Set(ctx context.Context, token, userID string, ttl time.Duration) error
	Delete(ctx context.Context, token string) error
}

// ContentStore persists file bytes. Locations are opaque to callers except
// that location+"_"+suffix addresses a derived variant.
type ContentStore interface {
	Store(ctx context.Context, data []byte) (string, error)
	StoreAt(ctx context.Context, location string, data []byte) error
	Load(ctx context.Context, location string) ([]byte, error)
	Remove(ctx context.Context, location string) error
}

// JobPublisher hands image post-processing off to the worker.
type JobPublisher interface {
	Publish(ctx context.Context, job models.ThumbnailJob) error
}

// Pinger reports whether a backing store is reachable.
type Pinger interface {
	IsAlive(ctx context.Context) bool
}
