package fulfillments

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

type PostgresRepository struct {
	db *sqlx.DB
}

func NewPostgresRepository(db *sqlx.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Claim records ticketIDs as the tickets issued for paymentID. The first
// caller wins and gets claimed=true; every later caller gets the stored set
// back with claimed=false, so a payment is never fulfilled twice.
func (r *PostgresRepository) Claim(ctx context.Context, paymentID string, ticketIDs []string) ([]string, bool, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO fulfillments (payment_id, ticket_ids)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING
	`, paymentID, pq.StringArray(ticketIDs))
	if err != nil {
		return nil, false, fmt.Errorf("could not claim fulfillment: %w", err)
	}

	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return nil, false, err
	}
	if rowsAffected == 1 {
		return ticketIDs, true, nil
	}

	var stored pq.StringArray
	err = r.db.GetContext(ctx, &stored, `
		SELECT ticket_ids FROM fulfillments WHERE payment_id = $1
	`, paymentID)
	if err != nil {
		return nil, false, fmt.Errorf("could not read existing fulfillment: %w", err)
	}

	return stored, false, nil
}
