package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/glosscard/glosscard-backend/internal/config"
	"github.com/glosscard/glosscard-backend/internal/domain"
)

// LocalStorage writes files below a directory that the HTTP server exposes.
type LocalStorage struct {
	basePath string
	baseURL  string
}

func NewLocalStorage(cfg *config.StorageConfig) (*LocalStorage, error) {
	if err := os.MkdirAll(cfg.BasePath, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}

	return &LocalStorage{
		basePath: cfg.BasePath,
		baseURL:  strings.TrimSuffix(cfg.BaseURL, "/"),
	}, nil
}

func (s *LocalStorage) Save(ctx context.Context, key string, reader io.Reader, contentType string) error {
	fullPath := filepath.Join(s.basePath, filepath.FromSlash(key))

	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return localError("create directory", err)
	}

	file, err := os.Create(fullPath)
	if err != nil {
		return localError("create file", err)
	}

	// A partial file would be served under /uploads.
	if _, err := io.Copy(file, reader); err != nil {
		file.Close()
		os.Remove(fullPath)
		return fmt.Errorf("failed to write file: %w", err)
	}
	if err := file.Close(); err != nil {
		os.Remove(fullPath)
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}

// URL is relative to the site root unless a base URL is configured.
func (s *LocalStorage) URL(ctx context.Context, key string) (string, error) {
	return fmt.Sprintf("%s/%s", s.baseURL, key), nil
}

func (s *LocalStorage) Close() error { return nil }

func localError(op string, err error) error {
	if os.IsPermission(err) {
		return fmt.Errorf("%w: %s: %v", domain.ErrStorageDenied, op, err)
	}
	return fmt.Errorf("failed to %s: %w", op, err)
}
