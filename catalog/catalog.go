// Package catalog loads the static event catalog. The catalog file is read
// once at startup and never reloaded.
package catalog

import (
	"encoding/json"
	"fmt"
	"os"

	"boxoffice/entity"
)

type Catalog struct {
	Events []entity.Event `json:"events"`

	// Gateway holds fallback credentials embedded in the catalog file.
	// Environment variables take precedence; the fallback exists for
	// developer convenience, not for production secrecy.
	Gateway GatewayCredentials `json:"gateway"`
}

type GatewayCredentials struct {
	ShopID    string `json:"shopId"`
	SecretKey string `json:"secretKey"`
}

func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read catalog file %s: %w", path, err)
	}

	var c Catalog
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("could not parse catalog file %s: %w", path, err)
	}

	return &c, nil
}

// FindEvent looks an event up by id. No match is not an error.
func (c *Catalog) FindEvent(id string) (entity.Event, bool) {
	for _, e := range c.Events {
		if e.ID == id {
			return e, true
		}
	}
	return entity.Event{}, false
}

// FindCategory looks a ticket category up within an event.
func (c *Catalog) FindCategory(event entity.Event, id string) (entity.TicketCategory, bool) {
	for _, tc := range event.TicketCategories {
		if tc.ID == id {
			return tc, true
		}
	}
	return entity.TicketCategory{}, false
}
