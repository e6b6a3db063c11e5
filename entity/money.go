package entity

import "github.com/shopspring/decimal"

type Money struct {
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
}

func NewMoney(amount decimal.Decimal, currency string) Money {
	return Money{Amount: amount, Currency: currency}
}

// Value renders the amount the way the gateway expects it: a string with
// exactly two decimal places.
func (m Money) Value() string {
	return m.Amount.StringFixed(2)
}

func (m Money) IsZero() bool {
	return m.Amount.IsZero()
}
