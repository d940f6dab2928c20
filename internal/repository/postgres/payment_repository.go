package postgres

import (
	"context"
	"time"

	"github.com/glosscard/glosscard-backend/internal/domain"
	"github.com/glosscard/glosscard-backend/internal/repository"
	"github.com/jmoiron/sqlx"
)

type paymentRepository struct {
	docs *documents
	now  func() time.Time
}

func NewPaymentRepository(db *sqlx.DB) repository.PaymentRepository {
	return &paymentRepository{
		docs: &documents{db: db, table: "payments", notFound: domain.ErrPaymentNotFound},
		now:  time.Now,
	}
}

func (r *paymentRepository) Save(ctx context.Context, id string, payment *domain.Payment) error {
	now := r.now().UTC()
	payment.ID = id
	if payment.CreatedAt.IsZero() {
		payment.CreatedAt = now
	}
	payment.UpdatedAt = now
	return r.docs.upsert(ctx, id, payment, now)
}

func (r *paymentRepository) GetByID(ctx context.Context, id string) (*domain.Payment, error) {
	var payment domain.Payment
	row, err := r.docs.get(ctx, id, &payment)
	if err != nil {
		return nil, err
	}
	payment.ID = row.ID
	payment.CreatedAt, payment.UpdatedAt = row.CreatedAt, row.UpdatedAt
	return &payment, nil
}
