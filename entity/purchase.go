package entity

import "github.com/shopspring/decimal"

// PurchaseRequest is what the storefront sends to start a purchase. The
// declared amount must reconcile with the catalog price before any payment
// is created.
type PurchaseRequest struct {
	Amount     decimal.Decimal `json:"amount"`
	EventID    string          `json:"eventId"`
	CategoryID string          `json:"categoryId"`
	Quantity   int             `json:"quantity"`
	UserID     string          `json:"userId"`
	Email      string          `json:"email"`
}
