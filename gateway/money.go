package gateway

import (
	"fmt"

	"github.com/shopspring/decimal"

	"boxoffice/entity"
)

func parseMoney(m moneyPayload) (entity.Money, error) {
	amount, err := decimal.NewFromString(m.Value)
	if err != nil {
		return entity.Money{}, fmt.Errorf("could not parse amount %q: %w", m.Value, err)
	}
	return entity.NewMoney(amount, m.Currency), nil
}
