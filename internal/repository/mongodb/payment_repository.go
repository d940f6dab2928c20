package mongodb

import (
	"context"
	"errors"
	"time"

	"github.com/glosscard/glosscard-backend/internal/domain"
	"github.com/glosscard/glosscard-backend/internal/repository"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type paymentRepository struct {
	coll *mongo.Collection
	now  func() time.Time
}

func NewPaymentRepository(db *mongo.Database) repository.PaymentRepository {
	return &paymentRepository{coll: db.Collection("payments"), now: time.Now}
}

func (r *paymentRepository) Save(ctx context.Context, id string, payment *domain.Payment) error {
	now := r.now().UTC()
	payment.ID = id
	if payment.CreatedAt.IsZero() {
		payment.CreatedAt = now
	}
	payment.UpdatedAt = now

	_, err := r.coll.ReplaceOne(ctx, bson.M{"_id": id}, payment, options.Replace().SetUpsert(true))
	if err != nil {
		return mapError(err)
	}
	return nil
}

func (r *paymentRepository) GetByID(ctx context.Context, id string) (*domain.Payment, error) {
	var payment domain.Payment
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&payment)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrPaymentNotFound
		}
		return nil, mapError(err)
	}
	return &payment, nil
}
