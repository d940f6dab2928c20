package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/glosscard/glosscard-backend/internal/config"
)

// Storage persists uploaded files and resolves their public URLs.
//
// Implementations report domain.ErrStorageDenied and domain.ErrBucketNotFound
// for the two failures the upload flow distinguishes.
type Storage interface {
	// Save stores the object under key.
	Save(ctx context.Context, key string, reader io.Reader, contentType string) error

	// URL returns the publicly retrievable URL for key.
	URL(ctx context.Context, key string) (string, error)

	Close() error
}

// NewStorage creates a Storage for the configured backend.
func NewStorage(ctx context.Context, cfg *config.StorageConfig) (Storage, error) {
	switch cfg.Type {
	case config.StorageLocal:
		return NewLocalStorage(cfg)
	case config.StorageS3:
		return NewS3Storage(cfg)
	case config.StorageGCS:
		return NewGCSStorage(ctx, cfg)
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", cfg.Type)
	}
}
