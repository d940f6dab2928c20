package payment

import (
	"context"
	"fmt"
	"strings"

	"github.com/glosscard/glosscard-backend/internal/domain"
	"github.com/glosscard/glosscard-backend/internal/repository"
)

type PaymentUseCase struct {
	paymentRepo repository.PaymentRepository
	network     repository.NetworkStatus
}

func NewPaymentUseCase(paymentRepo repository.PaymentRepository, network repository.NetworkStatus) *PaymentUseCase {
	return &PaymentUseCase{paymentRepo: paymentRepo, network: network}
}

// GetPayment fails fast with domain.ErrOffline while the store is unreachable.
func (uc *PaymentUseCase) GetPayment(ctx context.Context, id string) (*domain.Payment, error) {
	if strings.TrimSpace(id) == "" {
		return nil, domain.ErrInvalidInput
	}
	if !uc.network.Online() {
		return nil, domain.ErrOffline
	}

	p, err := uc.paymentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get payment %s: %w", id, err)
	}
	return p, nil
}

func (uc *PaymentUseCase) SavePayment(ctx context.Context, id string, p *domain.Payment) error {
	if strings.TrimSpace(id) == "" || p == nil {
		return domain.ErrInvalidInput
	}
	if err := uc.paymentRepo.Save(ctx, id, p); err != nil {
		return fmt.Errorf("save payment %s: %w", id, err)
	}
	return nil
}
