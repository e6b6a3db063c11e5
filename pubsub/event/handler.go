package event

import (
	"context"

	"boxoffice/entity"
)

type Notifier interface {
	SendTicketEmail(ctx context.Context, ticketID, eventID, categoryID, email string) (string, error)
	SendReceiptEmail(ctx context.Context, payment entity.Payment, ticketIDs []string) (string, error)
}

type PaymentsReader interface {
	GetPayment(ctx context.Context, paymentID string) (entity.Payment, error)
}

type Handler struct {
	notifier Notifier
	payments PaymentsReader
}

// NewHandler wires the async side of the purchase flow. payments may be nil
// when the service runs without gateway credentials: receipt events are only
// published by the paid flow, which needs the gateway anyway.
func NewHandler(notifier Notifier, payments PaymentsReader) Handler {
	if notifier == nil {
		panic("missing notifier")
	}

	return Handler{
		notifier: notifier,
		payments: payments,
	}
}
