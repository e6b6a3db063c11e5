package purchase

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/ThreeDotsLabs/go-event-driven/common/log"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"boxoffice/entity"
	"boxoffice/gateway"
	"boxoffice/metrics"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// amountTolerance absorbs rounding differences between the storefront's
// float arithmetic and the catalog price.
var amountTolerance = decimal.NewFromFloat(0.01)

type PurchaseResult struct {
	Success         bool                 `json:"success"`
	Free            bool                 `json:"free,omitempty"`
	TicketID        string               `json:"ticketId,omitempty"`
	PaymentID       string               `json:"paymentId,omitempty"`
	ConfirmationURL string               `json:"confirmationUrl,omitempty"`
	Amount          string               `json:"amount,omitempty"`
	Status          entity.PaymentStatus `json:"status,omitempty"`
}

// validate runs the request through the whole chain: required fields, email
// shape, catalog lookups, then amount reconciliation. The first failure wins
// and nothing is sent to the gateway.
func (s *Service) validate(req entity.PurchaseRequest) (entity.Event, entity.TicketCategory, error) {
	if req.EventID == "" || req.CategoryID == "" || req.Quantity < 1 {
		return entity.Event{}, entity.TicketCategory{}, entity.ErrMissingFields
	}
	// an absent email fails the shape check too
	if !emailPattern.MatchString(req.Email) {
		return entity.Event{}, entity.TicketCategory{}, entity.ErrInvalidEmail
	}

	event, ok := s.catalog.FindEvent(req.EventID)
	if !ok {
		return entity.Event{}, entity.TicketCategory{}, entity.ErrEventNotFound
	}
	category, ok := s.catalog.FindCategory(event, req.CategoryID)
	if !ok {
		return entity.Event{}, entity.TicketCategory{}, entity.ErrCategoryNotFound
	}

	expected := category.Price.Mul(decimal.NewFromInt(int64(req.Quantity)))
	if req.Amount.Sub(expected).Abs().GreaterThan(amountTolerance) {
		return entity.Event{}, entity.TicketCategory{}, entity.ErrAmountMismatch
	}

	return event, category, nil
}

// CreatePurchase validates the request and either issues a free ticket right
// away or creates a pending payment at the gateway and hands back the
// confirmation URL.
func (s *Service) CreatePurchase(ctx context.Context, req entity.PurchaseRequest) (PurchaseResult, error) {
	event, category, err := s.validate(req)
	if err != nil {
		return PurchaseResult{}, err
	}

	userID := req.UserID
	if userID == "" {
		userID = "anonymous"
	}

	if category.Price.IsZero() {
		return s.issueFreeTicket(ctx, req, event, category)
	}

	if s.payments == nil {
		return PurchaseResult{}, entity.ErrGatewayNotConfigured
	}

	amount := entity.NewMoney(req.Amount, s.currency)
	request := gateway.CreatePaymentRequest{
		Amount:      amount,
		Description: fmt.Sprintf("Tickets: %s - %s x %d", event.Name, category.Name, req.Quantity),
		ReturnURL:   s.returnURL,
		Metadata: entity.PaymentMetadata{
			EventID:      event.ID,
			CategoryID:   category.ID,
			Quantity:     fmt.Sprintf("%d", req.Quantity),
			UserID:       userID,
			Email:        req.Email,
			SendEmail:    "true",
			SendReceipt:  "true",
			EventName:    event.Name,
			CategoryName: category.Name,
		},
	}
	if s.receiptEnabled {
		request.Receipt = &gateway.FiscalReceipt{
			CustomerEmail:   req.Email,
			ItemDescription: fmt.Sprintf("Tickets: %s - %s", event.Name, category.Name),
			Quantity:        req.Quantity,
			Amount:          amount,
		}
	}

	payment, err := s.payments.CreatePayment(ctx, request, uuid.NewString())
	if err != nil {
		metrics.PaymentsCreated.WithLabelValues("error").Inc()
		return PurchaseResult{}, err
	}
	metrics.PaymentsCreated.WithLabelValues("ok").Inc()

	if err := s.paymentsRepo.Store(ctx, payment); err != nil {
		// the gateway holds the authoritative copy, losing the local
		// record only degrades the status endpoint's fallback
		log.FromContext(ctx).
			WithField("payment_id", payment.ID).
			WithError(err).
			Warn("Could not store payment record")
	}

	return PurchaseResult{
		Success:         true,
		PaymentID:       payment.ID,
		ConfirmationURL: payment.ConfirmationURL,
		Amount:          payment.Amount.Value(),
		Status:          payment.Status,
	}, nil
}

func (s *Service) issueFreeTicket(ctx context.Context, req entity.PurchaseRequest, event entity.Event, category entity.TicketCategory) (PurchaseResult, error) {
	ticketID := fmt.Sprintf("TICKET-%d-%s", time.Now().UnixMilli(), uuid.NewString()[:8])

	ticket := entity.Ticket{
		ID:         ticketID,
		EventID:    event.ID,
		CategoryID: category.ID,
		IssuedAt:   time.Now().UTC(),
	}
	if err := s.ticketsRepo.Store(ctx, ticket); err != nil {
		return PurchaseResult{}, fmt.Errorf("could not store free ticket: %w", err)
	}
	metrics.TicketsIssued.WithLabelValues("free").Inc()

	if req.Email != "" {
		err := s.publisher.Publish(ctx, entity.TicketIssued{
			Header:        entity.NewEventHeader(),
			TicketID:      ticketID,
			EventID:       event.ID,
			CategoryID:    category.ID,
			CustomerEmail: req.Email,
		})
		if err != nil {
			log.FromContext(ctx).
				WithField("ticket_id", ticketID).
				WithError(err).
				Error("Could not publish TicketIssued for free ticket")
		}
	}

	return PurchaseResult{
		Success:  true,
		Free:     true,
		TicketID: ticketID,
	}, nil
}
