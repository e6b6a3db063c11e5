package entity

import (
	"time"

	"github.com/google/uuid"
)

type EventHeader struct {
	ID             string    `json:"id"`
	PublishedAt    time.Time `json:"published_at"`
	IdempotencyKey string    `json:"idempotency_key"`
}

func NewEventHeader() EventHeader {
	return EventHeader{
		ID:          uuid.NewString(),
		PublishedAt: time.Now().UTC(),
	}
}

func NewEventHeaderWithIdempotencyKey(idempotencyKey string) EventHeader {
	return EventHeader{
		ID:             uuid.NewString(),
		PublishedAt:    time.Now().UTC(),
		IdempotencyKey: idempotencyKey,
	}
}

// TicketIssued is published once per issued unit. Email delivery hangs off
// this event so that one ticket's failure never blocks another's.
type TicketIssued struct {
	Header        EventHeader `json:"header"`
	TicketID      string      `json:"ticket_id"`
	PaymentID     string      `json:"payment_id"`
	EventID       string      `json:"event_id"`
	CategoryID    string      `json:"category_id"`
	CustomerEmail string      `json:"customer_email"`
}

// PaymentFulfilled is published exactly once per payment, by whichever
// observer (status poll or webhook) wins the fulfillment claim.
type PaymentFulfilled struct {
	Header        EventHeader `json:"header"`
	PaymentID     string      `json:"payment_id"`
	TicketIDs     []string    `json:"ticket_ids"`
	CustomerEmail string      `json:"customer_email"`
	SendReceipt   bool        `json:"send_receipt"`
}

type PaymentCanceled struct {
	Header    EventHeader `json:"header"`
	PaymentID string      `json:"payment_id"`
}
