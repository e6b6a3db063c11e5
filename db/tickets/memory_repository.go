package tickets

import (
	"context"
	"sort"
	"sync"

	"boxoffice/entity"
)

type MemoryRepository struct {
	lock    sync.RWMutex
	tickets map[string]entity.Ticket
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		tickets: map[string]entity.Ticket{},
	}
}

func (r *MemoryRepository) Store(_ context.Context, ticket entity.Ticket) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	if _, ok := r.tickets[ticket.ID]; ok {
		return nil
	}
	r.tickets[ticket.ID] = ticket
	return nil
}

func (r *MemoryRepository) Get(_ context.Context, ticketID string) (entity.Ticket, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	ticket, ok := r.tickets[ticketID]
	if !ok {
		return entity.Ticket{}, entity.ErrTicketNotFound
	}
	return ticket, nil
}

func (r *MemoryRepository) FindByPayment(_ context.Context, paymentID string) ([]entity.Ticket, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	var out []entity.Ticket
	for _, ticket := range r.tickets {
		if ticket.PaymentID == paymentID {
			out = append(out, ticket)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *MemoryRepository) FindAll(_ context.Context) ([]entity.Ticket, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	out := make([]entity.Ticket, 0, len(r.tickets))
	for _, ticket := range r.tickets {
		out = append(out, ticket)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
