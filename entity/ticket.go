package entity

import "time"

// Ticket is one admission unit. PaymentID is empty for free tickets, which
// never touch the gateway.
type Ticket struct {
	ID         string    `json:"ticket_id" db:"ticket_id"`
	PaymentID  string    `json:"payment_id,omitempty" db:"payment_id"`
	EventID    string    `json:"event_id" db:"event_id"`
	CategoryID string    `json:"category_id" db:"category_id"`
	IssuedAt   time.Time `json:"issued_at" db:"issued_at"`
}
