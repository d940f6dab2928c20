package firestore

import (
	"context"
	"fmt"
	"time"

	fs "cloud.google.com/go/firestore"
	"github.com/glosscard/glosscard-backend/internal/domain"
	"github.com/glosscard/glosscard-backend/internal/repository"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type paymentRepository struct {
	coll *fs.CollectionRef
	now  func() time.Time
}

func NewPaymentRepository(client *fs.Client) repository.PaymentRepository {
	return &paymentRepository{coll: client.Collection("payments"), now: time.Now}
}

func (r *paymentRepository) Save(ctx context.Context, id string, payment *domain.Payment) error {
	now := r.now().UTC()
	payment.ID = id
	if payment.CreatedAt.IsZero() {
		payment.CreatedAt = now
	}
	payment.UpdatedAt = now

	if _, err := r.coll.Doc(id).Set(ctx, payment); err != nil {
		return mapError(err)
	}
	return nil
}

func (r *paymentRepository) GetByID(ctx context.Context, id string) (*domain.Payment, error) {
	snap, err := r.coll.Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, domain.ErrPaymentNotFound
		}
		return nil, mapError(err)
	}

	var payment domain.Payment
	if err := snap.DataTo(&payment); err != nil {
		return nil, fmt.Errorf("decode payment %s: %w", id, err)
	}
	payment.ID = snap.Ref.ID
	return &payment, nil
}
