package entity

import "github.com/shopspring/decimal"

// Event is a live event from the static catalog. The catalog is loaded once
// at startup and treated as immutable for the life of the process.
type Event struct {
	ID               string           `json:"id"`
	Name             string           `json:"name"`
	Date             string           `json:"date"`
	Time             string           `json:"time"`
	Venue            string           `json:"venue"`
	Address          string           `json:"address,omitempty"`
	Description      string           `json:"description,omitempty"`
	TicketCategories []TicketCategory `json:"ticketCategories"`
}

type TicketCategory struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Available bool            `json:"available"`
}
