package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

var ErrNoContent = errors.New("content not found")

// LocalStore writes file content under a single directory, one randomly
// named file per upload.
type LocalStore struct {
	dir string
}

func NewLocalStore(dir string) *LocalStore {
	return &LocalStore{dir: dir}
}

// Store writes data to <dir>/<uuid>, creating dir if needed, and returns
// the full path.
func (s *LocalStore) Store(ctx context.Context, data []byte) (string, error) {
	path := filepath.Join(s.dir, uuid.NewString())
	if err := s.StoreAt(ctx, path, data); err != nil {
		return "", err
	}
	return path, nil
}

func (s *LocalStore) StoreAt(_ context.Context, location string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(location), 0o755); err != nil {
		return fmt.Errorf("create storage dir: %w", err)
	}
	if err := os.WriteFile(location, data, 0o644); err != nil {
		return fmt.Errorf("write content: %w", err)
	}
	return nil
}

func (s *LocalStore) Load(_ context.Context, location string) ([]byte, error) {
	data, err := os.ReadFile(location)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoContent, err)
	}
	return data, nil
}

func (s *LocalStore) Remove(_ context.Context, location string) error {
	if err := os.Remove(location); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
