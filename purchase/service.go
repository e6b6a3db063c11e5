package purchase

import (
	"context"

	"boxoffice/catalog"
	"boxoffice/entity"
	"boxoffice/gateway"
)

// PaymentsGateway is the slice of the payment provider the purchase flow
// needs. A nil gateway means the service runs without payment credentials
// and can only issue free tickets.
type PaymentsGateway interface {
	CreatePayment(ctx context.Context, request gateway.CreatePaymentRequest, idempotenceKey string) (entity.Payment, error)
	GetPayment(ctx context.Context, paymentID string) (entity.Payment, error)
}

type PaymentsRepository interface {
	Store(ctx context.Context, payment entity.Payment) error
	Get(ctx context.Context, paymentID string) (entity.Payment, error)
}

type TicketsRepository interface {
	Store(ctx context.Context, ticket entity.Ticket) error
	Get(ctx context.Context, ticketID string) (entity.Ticket, error)
	FindByPayment(ctx context.Context, paymentID string) ([]entity.Ticket, error)
	FindAll(ctx context.Context) ([]entity.Ticket, error)
}

// FulfillmentsRepository guards exactly-once ticket issuance per payment.
type FulfillmentsRepository interface {
	Claim(ctx context.Context, paymentID string, ticketIDs []string) (ids []string, claimed bool, err error)
}

type EventPublisher interface {
	Publish(ctx context.Context, event any) error
}

type Service struct {
	catalog        *catalog.Catalog
	payments       PaymentsGateway
	paymentsRepo   PaymentsRepository
	ticketsRepo    TicketsRepository
	fulfillments   FulfillmentsRepository
	publisher      EventPublisher
	returnURL      string
	currency       string
	receiptEnabled bool
	pollConfig     gateway.PollConfig
}

func NewService(
	c *catalog.Catalog,
	payments PaymentsGateway,
	paymentsRepo PaymentsRepository,
	ticketsRepo TicketsRepository,
	fulfillments FulfillmentsRepository,
	publisher EventPublisher,
	returnURL string,
	currency string,
	receiptEnabled bool,
) *Service {
	if c == nil {
		panic("missing catalog")
	}
	if paymentsRepo == nil {
		panic("missing paymentsRepo")
	}
	if ticketsRepo == nil {
		panic("missing ticketsRepo")
	}
	if fulfillments == nil {
		panic("missing fulfillments")
	}
	if publisher == nil {
		panic("missing publisher")
	}

	return &Service{
		catalog:        c,
		payments:       payments,
		paymentsRepo:   paymentsRepo,
		ticketsRepo:    ticketsRepo,
		fulfillments:   fulfillments,
		publisher:      publisher,
		returnURL:      returnURL,
		currency:       currency,
		receiptEnabled: receiptEnabled,
		pollConfig:     gateway.DefaultPollConfig(),
	}
}

func (s *Service) Events() []entity.Event {
	return s.catalog.Events
}

func (s *Service) Ticket(ctx context.Context, ticketID string) (entity.Ticket, error) {
	return s.ticketsRepo.Get(ctx, ticketID)
}
