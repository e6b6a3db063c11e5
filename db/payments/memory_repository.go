package payments

import (
	"context"
	"sync"

	"boxoffice/entity"
)

type MemoryRepository struct {
	lock     sync.RWMutex
	payments map[string]entity.Payment
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		payments: map[string]entity.Payment{},
	}
}

func (r *MemoryRepository) Store(_ context.Context, payment entity.Payment) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	r.payments[payment.ID] = payment
	return nil
}

func (r *MemoryRepository) Get(_ context.Context, paymentID string) (entity.Payment, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	payment, ok := r.payments[paymentID]
	if !ok {
		return entity.Payment{}, entity.ErrPaymentNotFound
	}
	return payment, nil
}
