package storage

import (
	"context"
	"fmt"

	"github.com/arzan03/FilesManager/internal/config"
)

// ContentStore is implemented by LocalStore and MinioStore.
type ContentStore interface {
	Store(ctx context.Context, data []byte) (string, error)
	StoreAt(ctx context.Context, location string, data []byte) error
	Load(ctx context.Context, location string) ([]byte, error)
	Remove(ctx context.Context, location string) error
}

// OpenContentStore returns the backend selected by cfg.StorageBackend.
func OpenContentStore(ctx context.Context, cfg *config.Config) (ContentStore, error) {
	switch cfg.StorageBackend {
	case "local":
		return NewLocalStore(cfg.FolderPath), nil
	case "minio":
		s, err := NewMinioStore(ctx, MinioOptions{
			Endpoint:  cfg.MinioEndpoint,
			AccessKey: cfg.MinioAccessKey,
			SecretKey: cfg.MinioSecretKey,
			Bucket:    cfg.MinioBucket,
			UseSSL:    cfg.MinioUseSSL,
		})
		if err != nil {
			return nil, err
		}
		return s, nil
	}
	return nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
}
