package purchase

import (
	"context"
	"errors"
	"regexp"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"boxoffice/catalog"
	"boxoffice/db/fulfillments"
	"boxoffice/db/payments"
	"boxoffice/db/tickets"
	"boxoffice/entity"
	"boxoffice/gateway"
)

type publisherMock struct {
	lock   sync.Mutex
	events []any
}

func (p *publisherMock) Publish(_ context.Context, event any) error {
	p.lock.Lock()
	defer p.lock.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *publisherMock) published() []any {
	p.lock.Lock()
	defer p.lock.Unlock()
	out := make([]any, len(p.events))
	copy(out, p.events)
	return out
}

func testCatalog() *catalog.Catalog {
	return &catalog.Catalog{
		Events: []entity.Event{
			{
				ID:    "live-1",
				Name:  "Neva Pulse Live",
				Date:  "2026-09-12",
				Time:  "20:00",
				Venue: "Main Hall",
				TicketCategories: []entity.TicketCategory{
					{ID: "vip", Name: "VIP", Price: decimal.NewFromInt(1000), Available: true},
					{ID: "dance", Name: "Dancefloor", Price: decimal.NewFromInt(600), Available: true},
					{ID: "guest", Name: "Guest list", Price: decimal.Zero, Available: true},
				},
			},
		},
	}
}

type testEnv struct {
	service   *Service
	gateway   *gateway.PaymentsMock
	tickets   *tickets.MemoryRepository
	publisher *publisherMock
}

func newTestEnv(t *testing.T) testEnv {
	t.Helper()

	paymentsMock := gateway.NewPaymentsMock()
	ticketsRepo := tickets.NewMemoryRepository()
	publisher := &publisherMock{}

	svc := NewService(
		testCatalog(),
		paymentsMock,
		payments.NewMemoryRepository(),
		ticketsRepo,
		fulfillments.NewMemoryRepository(),
		publisher,
		"https://shop.example/return",
		"RUB",
		false,
	)

	return testEnv{
		service:   svc,
		gateway:   paymentsMock,
		tickets:   ticketsRepo,
		publisher: publisher,
	}
}

func TestCreatePurchase_validation(t *testing.T) {
	tests := []struct {
		name    string
		request entity.PurchaseRequest
		wantErr error
	}{
		{
			name:    "missing fields",
			request: entity.PurchaseRequest{Amount: decimal.NewFromInt(1000)},
			wantErr: entity.ErrMissingFields,
		},
		{
			name: "missing quantity",
			request: entity.PurchaseRequest{
				Amount: decimal.NewFromInt(1000), EventID: "live-1", CategoryID: "vip",
				Email: "a@b.io",
			},
			wantErr: entity.ErrMissingFields,
		},
		{
			name: "invalid email",
			request: entity.PurchaseRequest{
				Amount: decimal.NewFromInt(1000), EventID: "live-1", CategoryID: "vip",
				Quantity: 1, Email: "not an email",
			},
			wantErr: entity.ErrInvalidEmail,
		},
		{
			name: "missing email",
			request: entity.PurchaseRequest{
				Amount: decimal.NewFromInt(1000), EventID: "live-1", CategoryID: "vip",
				Quantity: 1,
			},
			wantErr: entity.ErrInvalidEmail,
		},
		{
			name: "unknown event",
			request: entity.PurchaseRequest{
				Amount: decimal.NewFromInt(1000), EventID: "nope", CategoryID: "vip",
				Quantity: 1, Email: "a@b.io",
			},
			wantErr: entity.ErrEventNotFound,
		},
		{
			name: "unknown category",
			request: entity.PurchaseRequest{
				Amount: decimal.NewFromInt(1000), EventID: "live-1", CategoryID: "nope",
				Quantity: 1, Email: "a@b.io",
			},
			wantErr: entity.ErrCategoryNotFound,
		},
		{
			name: "amount mismatch",
			request: entity.PurchaseRequest{
				Amount: decimal.NewFromInt(500), EventID: "live-1", CategoryID: "vip",
				Quantity: 1, Email: "a@b.io",
			},
			wantErr: entity.ErrAmountMismatch,
		},
		{
			name: "amount mismatch for quantity",
			request: entity.PurchaseRequest{
				Amount: decimal.NewFromInt(1000), EventID: "live-1", CategoryID: "vip",
				Quantity: 2, Email: "a@b.io",
			},
			wantErr: entity.ErrAmountMismatch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)

			_, err := env.service.CreatePurchase(context.Background(), tt.request)
			assert.ErrorIs(t, err, tt.wantErr)

			// nothing reaches the gateway on a rejected request
			assert.Zero(t, env.gateway.CreateCalls)
			assert.Empty(t, env.publisher.published())
		})
	}
}

func TestCreatePurchase_amountWithinTolerance(t *testing.T) {
	env := newTestEnv(t)

	result, err := env.service.CreatePurchase(context.Background(), entity.PurchaseRequest{
		Amount:     decimal.RequireFromString("1000.01"),
		EventID:    "live-1",
		CategoryID: "vip",
		Quantity:   1,
		Email:      "a@b.io",
	})
	require.NoError(t, err)
	assert.True(t, result.Success)
}

var freeTicketIDPattern = regexp.MustCompile(`^TICKET-\d+-[0-9a-f]{8}$`)

func TestCreatePurchase_freeTicket(t *testing.T) {
	env := newTestEnv(t)

	result, err := env.service.CreatePurchase(context.Background(), entity.PurchaseRequest{
		Amount:     decimal.Zero,
		EventID:    "live-1",
		CategoryID: "guest",
		Quantity:   1,
		Email:      "guest@b.io",
	})
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.True(t, result.Free)
	assert.Regexp(t, freeTicketIDPattern, result.TicketID)
	assert.Empty(t, result.ConfirmationURL)

	// no gateway involvement on the free path
	assert.Zero(t, env.gateway.CreateCalls)

	stored, err := env.tickets.Get(context.Background(), result.TicketID)
	require.NoError(t, err)
	assert.Equal(t, "live-1", stored.EventID)
	assert.Empty(t, stored.PaymentID)

	published := env.publisher.published()
	require.Len(t, published, 1)
	issued, ok := published[0].(entity.TicketIssued)
	require.True(t, ok)
	assert.Equal(t, result.TicketID, issued.TicketID)
	assert.Equal(t, "guest@b.io", issued.CustomerEmail)
}

func TestCreatePurchase_paid(t *testing.T) {
	env := newTestEnv(t)

	result, err := env.service.CreatePurchase(context.Background(), entity.PurchaseRequest{
		Amount:     decimal.NewFromInt(1200),
		EventID:    "live-1",
		CategoryID: "dance",
		Quantity:   2,
		Email:      "a@b.io",
	})
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.False(t, result.Free)
	assert.NotEmpty(t, result.PaymentID)
	assert.NotEmpty(t, result.ConfirmationURL)
	assert.Equal(t, entity.PaymentStatusPending, result.Status)

	require.Equal(t, 1, env.gateway.CreateCalls)
	require.Len(t, env.gateway.IdempotenceKeys, 1)
	assert.NotEmpty(t, env.gateway.IdempotenceKeys[0])

	payment := env.gateway.Payments[result.PaymentID]
	assert.Equal(t, "2", payment.Metadata.Quantity)
	assert.Equal(t, "a@b.io", payment.Metadata.Email)
	assert.Equal(t, "anonymous", payment.Metadata.UserID)
	assert.Equal(t, "Neva Pulse Live", payment.Metadata.EventName)

	// nothing is issued until the payment succeeds
	all, err := env.tickets.FindAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestCreatePurchase_noGatewayConfigured(t *testing.T) {
	env := newTestEnv(t)
	env.service.payments = nil

	_, err := env.service.CreatePurchase(context.Background(), entity.PurchaseRequest{
		Amount:     decimal.NewFromInt(1000),
		EventID:    "live-1",
		CategoryID: "vip",
		Quantity:   1,
		Email:      "a@b.io",
	})
	assert.ErrorIs(t, err, entity.ErrGatewayNotConfigured)
}

var paidTicketIDPattern = regexp.MustCompile(`^TICKET-\d+-[a-z0-9]{9}-\d+$`)

func TestStatus_fulfillsOnceAndStays(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	created, err := env.service.CreatePurchase(ctx, entity.PurchaseRequest{
		Amount:     decimal.NewFromInt(1200),
		EventID:    "live-1",
		CategoryID: "dance",
		Quantity:   2,
		Email:      "a@b.io",
	})
	require.NoError(t, err)

	status, err := env.service.Status(ctx, created.PaymentID)
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentStatusPending, status.Status)
	assert.Empty(t, status.TicketIDs)

	env.gateway.SetStatus(created.PaymentID, entity.PaymentStatusSucceeded)

	first, err := env.service.Status(ctx, created.PaymentID)
	require.NoError(t, err)
	require.Len(t, first.TicketIDs, 2)
	for _, id := range first.TicketIDs {
		assert.Regexp(t, paidTicketIDPattern, id)
	}
	assert.Equal(t, first.TicketIDs[0], first.TicketID)
	assert.True(t, first.Paid)

	// asking again returns the same set, no new tickets
	second, err := env.service.Status(ctx, created.PaymentID)
	require.NoError(t, err)
	assert.Equal(t, first.TicketIDs, second.TicketIDs)

	all, err := env.tickets.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	var issued int
	var fulfilled int
	for _, e := range env.publisher.published() {
		switch e.(type) {
		case entity.TicketIssued:
			issued++
		case entity.PaymentFulfilled:
			fulfilled++
		}
	}
	assert.Equal(t, 2, issued)
	assert.Equal(t, 1, fulfilled)
}

type flakyTicketsRepo struct {
	*tickets.MemoryRepository

	lock   sync.Mutex
	calls  int
	failOn int
}

func (r *flakyTicketsRepo) Store(ctx context.Context, ticket entity.Ticket) error {
	r.lock.Lock()
	r.calls++
	fail := r.calls == r.failOn
	r.lock.Unlock()

	if fail {
		return errors.New("store failed")
	}
	return r.MemoryRepository.Store(ctx, ticket)
}

func TestStatus_interruptedFulfillmentIsRepaired(t *testing.T) {
	env := newTestEnv(t)
	env.service.ticketsRepo = &flakyTicketsRepo{MemoryRepository: env.tickets, failOn: 2}
	ctx := context.Background()

	created, err := env.service.CreatePurchase(ctx, entity.PurchaseRequest{
		Amount:     decimal.NewFromInt(1200),
		EventID:    "live-1",
		CategoryID: "dance",
		Quantity:   2,
		Email:      "a@b.io",
	})
	require.NoError(t, err)

	env.gateway.SetStatus(created.PaymentID, entity.PaymentStatusSucceeded)

	// the first observation wins the claim but dies storing the second
	// ticket, before anything is published
	_, err = env.service.Status(ctx, created.PaymentID)
	require.Error(t, err)
	assert.Empty(t, env.publisher.published())

	// the next observation finds the incomplete claim and finishes it
	status, err := env.service.Status(ctx, created.PaymentID)
	require.NoError(t, err)
	require.Len(t, status.TicketIDs, 2)

	all, err := env.tickets.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	var issued, fulfilled int
	for _, e := range env.publisher.published() {
		switch e.(type) {
		case entity.TicketIssued:
			issued++
		case entity.PaymentFulfilled:
			fulfilled++
		}
	}
	assert.Equal(t, 2, issued)
	assert.Equal(t, 1, fulfilled)

	// a third look changes nothing
	again, err := env.service.Status(ctx, created.PaymentID)
	require.NoError(t, err)
	assert.Equal(t, status.TicketIDs, again.TicketIDs)
	assert.Len(t, env.publisher.published(), 3)
}

func TestStatus_unknownPayment(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.service.Status(context.Background(), "nope")
	assert.ErrorIs(t, err, entity.ErrPaymentNotFound)
}

func TestConfirmFromWebhook_succeeded(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	created, err := env.service.CreatePurchase(ctx, entity.PurchaseRequest{
		Amount:     decimal.NewFromInt(600),
		EventID:    "live-1",
		CategoryID: "dance",
		Quantity:   1,
		Email:      "a@b.io",
	})
	require.NoError(t, err)

	env.gateway.SetStatus(created.PaymentID, entity.PaymentStatusSucceeded)

	require.NoError(t, env.service.ConfirmFromWebhook(ctx, created.PaymentID))

	stored, err := env.tickets.FindByPayment(ctx, created.PaymentID)
	require.NoError(t, err)
	require.Len(t, stored, 1)

	// a repeated webhook for the same payment changes nothing
	require.NoError(t, env.service.ConfirmFromWebhook(ctx, created.PaymentID))
	again, err := env.tickets.FindByPayment(ctx, created.PaymentID)
	require.NoError(t, err)
	assert.Equal(t, stored, again)
}

func TestConfirmFromWebhook_canceled(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	created, err := env.service.CreatePurchase(ctx, entity.PurchaseRequest{
		Amount:     decimal.NewFromInt(600),
		EventID:    "live-1",
		CategoryID: "dance",
		Quantity:   1,
		Email:      "a@b.io",
	})
	require.NoError(t, err)

	env.gateway.SetStatus(created.PaymentID, entity.PaymentStatusCanceled)

	require.NoError(t, env.service.ConfirmFromWebhook(ctx, created.PaymentID))

	all, err := env.tickets.FindAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)

	var canceled int
	for _, e := range env.publisher.published() {
		if _, ok := e.(entity.PaymentCanceled); ok {
			canceled++
		}
	}
	assert.Equal(t, 1, canceled)
}

func TestResendTicketEmail(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	free, err := env.service.CreatePurchase(ctx, entity.PurchaseRequest{
		Amount:     decimal.Zero,
		EventID:    "live-1",
		CategoryID: "guest",
		Quantity:   1,
		Email:      "guest@b.io",
	})
	require.NoError(t, err)

	err = env.service.ResendTicketEmail(ctx, free.TicketID, "other@b.io")
	require.NoError(t, err)

	published := env.publisher.published()
	last, ok := published[len(published)-1].(entity.TicketIssued)
	require.True(t, ok)
	assert.Equal(t, free.TicketID, last.TicketID)
	assert.Equal(t, "other@b.io", last.CustomerEmail)

	assert.ErrorIs(t, env.service.ResendTicketEmail(ctx, "TICKET-0-nope", "a@b.io"), entity.ErrTicketNotFound)
	assert.ErrorIs(t, env.service.ResendTicketEmail(ctx, free.TicketID, "bad email"), entity.ErrInvalidEmail)
}
