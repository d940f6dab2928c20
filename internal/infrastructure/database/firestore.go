package database

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/glosscard/glosscard-backend/internal/config"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// NewFirestoreClient opens a Firestore client for the configured project.
// Credentials fall back to Application Default Credentials when no file is
// configured.
func NewFirestoreClient(cfg *config.FirestoreConfig) (*firestore.Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var opts []option.ClientOption
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}

	client, err := firestore.NewClient(ctx, cfg.ProjectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create firestore client: %w", err)
	}
	return client, nil
}

// PingFirestore performs a cheap read to check that Firestore answers.
// A missing document still proves connectivity.
func PingFirestore(client *firestore.Client) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		_, err := client.Collection("_health").Doc("ping").Get(ctx)
		if err == nil || status.Code(err) == codes.NotFound {
			return nil
		}
		return err
	}
}
