package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/glosscard/glosscard-backend/internal/domain"
	"github.com/glosscard/glosscard-backend/internal/repository"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type profileRepository struct {
	coll *mongo.Collection
	now  func() time.Time
}

func NewProfileRepository(db *mongo.Database) repository.ProfileRepository {
	return &profileRepository{coll: db.Collection("profiles"), now: time.Now}
}

func (r *profileRepository) Create(ctx context.Context, id string, profile *domain.Profile) error {
	now := r.now().UTC()
	profile.ID = id
	profile.CreatedAt, profile.UpdatedAt = now, now
	profile.Normalize()

	if _, err := r.coll.InsertOne(ctx, profile); err != nil {
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

	_, err := r.coll.ReplaceOne(ctx, bson.M{"_id": id}, profile, options.Replace().SetUpsert(true))
	if err != nil {
		return mapError(err)
	}
	return nil
}

func (r *profileRepository) GetByID(ctx context.Context, id string) (*domain.Profile, error) {
	var profile domain.Profile
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&profile)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, mapError(err)
	}
	profile.Normalize()
	return &profile, nil
}

// Codes 13 (Unauthorized), 18 (AuthenticationFailed) and 8000 (Atlas
// AtlasError for missing privileges).
var permissionCodes = []int{13, 18, 8000}

func mapError(err error) error {
	if errors.Is(err, mongo.ErrClientDisconnected) {
		return fmt.Errorf("%w: %v", domain.ErrNotInitialized, err)
	}

	var serverErr mongo.ServerError
	if errors.As(err, &serverErr) {
		for _, code := range permissionCodes {
			if serverErr.HasErrorCode(code) {
				return fmt.Errorf("%w: %v", domain.ErrPermissionDenied, err)
			}
		}
	}

	if mongo.IsNetworkError(err) || mongo.IsTimeout(err) {
		return fmt.Errorf("%w: %v", domain.ErrUnavailable, err)
	}
	return err
}
