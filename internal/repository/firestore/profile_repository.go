package firestore

import (
	"context"
	"errors"
	"fmt"
	"time"

	fs "cloud.google.com/go/firestore"
	"github.com/glosscard/glosscard-backend/internal/domain"
	"github.com/glosscard/glosscard-backend/internal/repository"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type profileRepository struct {
	coll *fs.CollectionRef
	now  func() time.Time
}

func NewProfileRepository(client *fs.Client) repository.ProfileRepository {
	return &profileRepository{coll: client.Collection("profiles"), now: time.Now}
}

func (r *profileRepository) Create(ctx context.Context, id string, profile *domain.Profile) error {
	now := r.now().UTC()
	profile.ID = id
	profile.CreatedAt, profile.UpdatedAt = now, now
	profile.Normalize()

	if _, err := r.coll.Doc(id).Create(ctx, profile); err != nil {
		return mapError(err)
	}
	return nil
}

func (r *profileRepository) Save(ctx context.Context, id string, profile *domain.Profile) error {
	now := r.now().UTC()
	profile.ID = id
	if profile.CreatedAt.IsZero() {
		profile.CreatedAt = now
	}
	profile.UpdatedAt = now
	profile.Normalize()

	if _, err := r.coll.Doc(id).Set(ctx, profile); err != nil {
		return mapError(err)
	}
	return nil
}

func (r *profileRepository) GetByID(ctx context.Context, id string) (*domain.Profile, error) {
	snap, err := r.coll.Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, domain.ErrProfileNotFound
		}
		return nil, mapError(err)
	}

	var profile domain.Profile
	if err := snap.DataTo(&profile); err != nil {
		return nil, fmt.Errorf("decode profile %s: %w", id, err)
	}
	profile.ID = snap.Ref.ID
	profile.Normalize()
	return &profile, nil
}

// mapError folds gRPC status codes returned by Firestore onto the domain
// error taxonomy.
func mapError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", domain.ErrUnavailable, err)
	}

	switch status.Code(err) {
	case codes.PermissionDenied, codes.Unauthenticated:
		return fmt.Errorf("%w: %v", domain.ErrPermissionDenied, err)
	case codes.Unavailable, codes.DeadlineExceeded:
		return fmt.Errorf("%w: %v", domain.ErrUnavailable, err)
	case codes.FailedPrecondition:
		return fmt.Errorf("%w: %v", domain.ErrNotInitialized, err)
	}
	return err
}
