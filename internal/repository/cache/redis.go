// Package cache provides read-through Redis decorators for the card
// repositories. Cache failures never fail a request; they are logged and the
// underlying store is used directly.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/glosscard/glosscard-backend/internal/domain"
	"github.com/glosscard/glosscard-backend/internal/repository"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type store struct {
	client *redis.Client
	ttl    time.Duration
	log    *zap.Logger
}

func profileKey(id string) string { return fmt.Sprintf("profile:%s", id) }
func paymentKey(id string) string { return fmt.Sprintf("payment:%s", id) }

// lookup returns true when dst was filled from the cache.
func (s *store) lookup(ctx context.Context, key string, dst any) bool {
	val, err := s.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return false
	} else if err != nil {
		s.log.Warn("cache read failed", zap.String("key", key), zap.Error(err))
		return false
	}

	if err := json.Unmarshal(val, dst); err != nil {
		s.log.Warn("cache entry corrupt", zap.String("key", key), zap.Error(err))
		s.forget(ctx, key)
		return false
	}
	return true
}

func (s *store) remember(ctx context.Context, key string, v any) {
	val, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := s.client.Set(ctx, key, val, s.ttl).Err(); err != nil {
		s.log.Warn("cache write failed", zap.String("key", key), zap.Error(err))
	}
}

func (s *store) forget(ctx context.Context, key string) {
	if err := s.client.Del(ctx, key).Err(); err != nil {
		s.log.Warn("cache invalidation failed", zap.String("key", key), zap.Error(err))
	}
}

// cachedGet reads key from the cache, falling back to load and populating
// the cache on success.
func cachedGet[T any](ctx context.Context, s *store, key string, load func() (*T, error)) (*T, error) {
	var cached T
	if s.lookup(ctx, key, &cached) {
		return &cached, nil
	}

	v, err := load()
	if err != nil {
		return nil, err
	}
	s.remember(ctx, key, v)
	return v, nil
}

type profileRepository struct {
	next  repository.ProfileRepository
	cache *store
}

func NewProfileRepository(next repository.ProfileRepository, client *redis.Client, ttl time.Duration, log *zap.Logger) repository.ProfileRepository {
	return &profileRepository{next: next, cache: &store{client: client, ttl: ttl, log: log}}
}

func (r *profileRepository) Create(ctx context.Context, id string, profile *domain.Profile) error {
	return r.next.Create(ctx, id, profile)
}

func (r *profileRepository) Save(ctx context.Context, id string, profile *domain.Profile) error {
	if err := r.next.Save(ctx, id, profile); err != nil {
		return err
	}
	r.cache.forget(ctx, profileKey(id))
	return nil
}

func (r *profileRepository) GetByID(ctx context.Context, id string) (*domain.Profile, error) {
	profile, err := cachedGet(ctx, r.cache, profileKey(id), func() (*domain.Profile, error) {
		return r.next.GetByID(ctx, id)
	})
	if err != nil {
		return nil, err
	}
	if profile.ID == "" {
		profile.ID = id
	}
	profile.Normalize()
	return profile, nil
}

type paymentRepository struct {
	next  repository.PaymentRepository
	cache *store
}

func NewPaymentRepository(next repository.PaymentRepository, client *redis.Client, ttl time.Duration, log *zap.Logger) repository.PaymentRepository {
	return &paymentRepository{next: next, cache: &store{client: client, ttl: ttl, log: log}}
}

func (r *paymentRepository) Save(ctx context.Context, id string, payment *domain.Payment) error {
	if err := r.next.Save(ctx, id, payment); err != nil {
		return err
	}
	r.cache.forget(ctx, paymentKey(id))
	return nil
}

func (r *paymentRepository) GetByID(ctx context.Context, id string) (*domain.Payment, error) {
	payment, err := cachedGet(ctx, r.cache, paymentKey(id), func() (*domain.Payment, error) {
		return r.next.GetByID(ctx, id)
	})
	if err != nil {
		return nil, err
	}
	if payment.ID == "" {
		payment.ID = id
	}
	return payment, nil
}

