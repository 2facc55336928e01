package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MinioOptions configures the object storage backend.
type MinioOptions struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// MinioStore keeps file content as objects in one bucket. Locations are
// object names.
type MinioStore struct {
	client *minio.Client
	bucket string
}

// NewMinioStore connects and creates the bucket if it is missing.
func NewMinioStore(ctx context.Context, opts MinioOptions) (*MinioStore, error) {
	client, err := minio.New(opts.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(opts.AccessKey, opts.SecretKey, ""),
		Secure: opts.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("minio client: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	exists, err := client.BucketExists(ctx, opts.Bucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket %s: %w", opts.Bucket, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, opts.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("create bucket %s: %w", opts.Bucket, err)
		}
	}

	return &MinioStore{client: client, bucket: opts.Bucket}, nil
}

func (s *MinioStore) Store(ctx context.Context, data []byte) (string, error) {
	name := uuid.NewString()
	if err := s.StoreAt(ctx, name, data); err != nil {
		return "", err
	}
	return name, nil
}

func (s *MinioStore) StoreAt(ctx context.Context, location string, data []byte) error {
	_, err := s.client.PutObject(ctx, s.bucket, location,
		bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: "application/octet-stream"},
	)
	if err != nil {
		return fmt.Errorf("put object: %w", err)
	}
	return nil
}

func (s *MinioStore) Load(ctx context.Context, location string) ([]byte, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, location, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoContent, err)
	}
	defer obj.Close()

	// GetObject is lazy; a missing key surfaces on first read.
	data, err := io.ReadAll(obj)
	if err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return nil, fmt.Errorf("%w: %s", ErrNoContent, location)
		}
		return nil, err
	}
	return data, nil
}

func (s *MinioStore) Remove(ctx context.Context, location string) error {
	return s.client.RemoveObject(ctx, s.bucket, location, minio.RemoveObjectOptions{})
}
