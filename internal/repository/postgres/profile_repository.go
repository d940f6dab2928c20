package postgres

import (
	"context"
	"time"

	"github.com/glosscard/glosscard-backend/internal/domain"
	"github.com/glosscard/glosscard-backend/internal/repository"
	"github.com/jmoiron/sqlx"
)

type profileRepository struct {
	docs *documents
	now  func() time.Time
}

func NewProfileRepository(db *sqlx.DB) repository.ProfileRepository {
	return &profileRepository{
		docs: &documents{db: db, table: "profiles", notFound: domain.ErrProfileNotFound},
		now:  time.Now,
	}
}

func (r *profileRepository) Create(ctx context.Context, id string, profile *domain.Profile) error {
	now := r.now().UTC()
	profile.ID = id
	profile.CreatedAt, profile.UpdatedAt = now, now
	profile.Normalize()
	return r.docs.insert(ctx, id, profile, now)
}

func (r *profileRepository) Save(ctx context.Context, id string, profile *domain.Profile) error {
	now := r.now().UTC()
	profile.ID = id
	if profile.CreatedAt.IsZero() {
		profile.CreatedAt = now
	}
	profile.UpdatedAt = now
	profile.Normalize()
	return r.docs.upsert(ctx, id, profile, now)
}

func (r *profileRepository) GetByID(ctx context.Context, id string) (*domain.Profile, error) {
	var profile domain.Profile
	row, err := r.docs.get(ctx, id, &profile)
	if err != nil {
		return nil, err
	}
	profile.ID = row.ID
	profile.CreatedAt, profile.UpdatedAt = row.CreatedAt, row.UpdatedAt
	profile.Normalize()
	return &profile, nil
}
