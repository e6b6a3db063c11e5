package fulfillments

import (
	"context"
	"sync"
)

type MemoryRepository struct {
	lock   sync.Mutex
	claims map[string][]string
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		claims: map[string][]string{},
	}
}

func (r *MemoryRepository) Claim(_ context.Context, paymentID string, ticketIDs []string) ([]string, bool, error) {
	r.lock.Lock()
	defer r.lock.Unlock()

	if existing, ok := r.claims[paymentID]; ok {
		out := make([]string, len(existing))
		copy(out, existing)
		return out, false, nil
	}

	stored := make([]string, len(ticketIDs))
	copy(stored, ticketIDs)
	r.claims[paymentID] = stored

	return ticketIDs, true, nil
}
