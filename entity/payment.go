package entity

import (
	"strconv"
	"time"
)

type PaymentStatus string

const (
	PaymentStatusPending           PaymentStatus = "pending"
	PaymentStatusWaitingForCapture PaymentStatus = "waiting_for_capture"
	PaymentStatusSucceeded         PaymentStatus = "succeeded"
	PaymentStatusCanceled          PaymentStatus = "canceled"
)

// Terminal reports whether no further transition can happen at the gateway.
func (s PaymentStatus) Terminal() bool {
	return s == PaymentStatusSucceeded || s == PaymentStatusCanceled
}

// Payment mirrors the gateway's view of a payment. It is created from
// gateway responses and mutated only by re-reading gateway state, never
// transitioned independently.
type Payment struct {
	ID              string          `json:"id"`
	Status          PaymentStatus   `json:"status"`
	Paid            bool            `json:"paid"`
	Amount          Money           `json:"amount"`
	ConfirmationURL string          `json:"confirmationUrl,omitempty"`
	Metadata        PaymentMetadata `json:"metadata"`
	CreatedAt       time.Time       `json:"createdAt"`
}

// PaymentMetadata carries every field needed to reconstruct the ticket and
// notification intent later. The gateway is the only durable store for it,
// so all values are strings on the wire.
type PaymentMetadata struct {
	EventID      string `json:"eventId"`
	CategoryID   string `json:"categoryId"`
	Quantity     string `json:"quantity"`
	UserID       string `json:"userId"`
	Email        string `json:"email"`
	SendEmail    string `json:"sendEmail"`
	SendReceipt  string `json:"sendReceipt"`
	EventName    string `json:"eventName"`
	CategoryName string `json:"categoryName"`
}

// QuantityInt parses the quantity carried in metadata, defaulting to one
// unit when absent or malformed.
func (m PaymentMetadata) QuantityInt() int {
	n, err := strconv.Atoi(m.Quantity)
	if err != nil || n < 1 {
		return 1
	}
	return n
}

func (m PaymentMetadata) EmailWanted() bool {
	return m.Email != "" && m.SendEmail != "false"
}

func (m PaymentMetadata) ReceiptWanted() bool {
	return m.Email != "" && m.SendReceipt == "true"
}
