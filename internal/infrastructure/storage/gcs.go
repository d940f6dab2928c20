package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	gcs "cloud.google.com/go/storage"
	"github.com/glosscard/glosscard-backend/internal/config"
	"github.com/glosscard/glosscard-backend/internal/domain"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

// GCSStorage stores uploads in a Google Cloud Storage bucket.
type GCSStorage struct {
	client  *gcs.Client
	bucket  string
	baseURL string
}

func NewGCSStorage(ctx context.Context, cfg *config.StorageConfig) (*GCSStorage, error) {
	var opts []option.ClientOption
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}

	client, err := gcs.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCS client: %w", err)
	}

	baseURL := strings.TrimSuffix(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = fmt.Sprintf("https://storage.googleapis.com/%s", cfg.Bucket)
	}

	return &GCSStorage{client: client, bucket: cfg.Bucket, baseURL: baseURL}, nil
}

func (s *GCSStorage) Save(ctx context.Context, key string, reader io.Reader, contentType string) error {
	w := s.client.Bucket(s.bucket).Object(key).NewWriter(ctx)
	w.ContentType = contentType

	if _, err := io.Copy(w, reader); err != nil {
		_ = w.Close()
		return gcsError(err)
	}
	if err := w.Close(); err != nil {
		return gcsError(err)
	}
	return nil
}

func (s *GCSStorage) URL(ctx context.Context, key string) (string, error) {
	return fmt.Sprintf("%s/%s", s.baseURL, key), nil
}

func (s *GCSStorage) Close() error {
	return s.client.Close()
}

func gcsError(err error) error {
	if errors.Is(err, gcs.ErrBucketNotExist) {
		return fmt.Errorf("%w: %v", domain.ErrBucketNotFound, err)
	}

	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case http.StatusUnauthorized, http.StatusForbidden:
			return fmt.Errorf("%w: %s", domain.ErrStorageDenied, apiErr.Message)
		case http.StatusNotFound:
			return fmt.Errorf("%w: %s", domain.ErrBucketNotFound, apiErr.Message)
		}
	}
	return fmt.Errorf("failed to upload to GCS: %w", err)
}
