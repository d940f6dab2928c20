package repository

import (
	"context"

	"github.com/glosscard/glosscard-backend/internal/domain"
)

// ProfileRepository stores profile documents under opaque IDs.
// Create fails when the ID is already taken; Save creates or overwrites.
type ProfileRepository interface {
	Create(ctx context.Context, id string, profile *domain.Profile) error
	Save(ctx context.Context, id string, profile *domain.Profile) error
	GetByID(ctx context.Context, id string) (*domain.Profile, error)
}

type PaymentRepository interface {
	Save(ctx context.Context, id string, payment *domain.Payment) error
	GetByID(ctx context.Context, id string) (*domain.Payment, error)
}

// Pinger reports whether the document store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type PingerFunc func(ctx context.Context) error

func (f PingerFunc) Ping(ctx context.Context) error { return f(ctx) }

// NetworkStatus reports the last known reachability of the document store.
type NetworkStatus interface {
	Online() bool
}
