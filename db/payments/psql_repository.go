package payments

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"boxoffice/entity"
)

type PostgresRepository struct {
	db *sqlx.DB
}

func NewPostgresRepository(db *sqlx.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

type paymentRow struct {
	PaymentID string    `db:"payment_id"`
	Status    string    `db:"status"`
	Paid      bool      `db:"paid"`
	Amount    string    `db:"amount"`
	Currency  string    `db:"currency"`
	Metadata  []byte    `db:"metadata"`
	CreatedAt time.Time `db:"created_at"`
}

func (r *PostgresRepository) Store(ctx context.Context, payment entity.Payment) error {
	metadata, err := json.Marshal(payment.Metadata)
	if err != nil {
		return fmt.Errorf("could not marshal payment metadata: %w", err)
	}

	_, err = r.db.NamedExecContext(ctx, `
		INSERT INTO payments (payment_id, status, paid, amount, currency, metadata, created_at)
		VALUES (:payment_id, :status, :paid, :amount, :currency, :metadata, :created_at)
		ON CONFLICT (payment_id) DO UPDATE
		SET status = EXCLUDED.status, paid = EXCLUDED.paid
	`, paymentRow{
		PaymentID: payment.ID,
		Status:    string(payment.Status),
		Paid:      payment.Paid,
		Amount:    payment.Amount.Value(),
		Currency:  payment.Amount.Currency,
		Metadata:  metadata,
		CreatedAt: payment.CreatedAt,
	})
	return err
}

func (r *PostgresRepository) Get(ctx context.Context, paymentID string) (entity.Payment, error) {
	var row paymentRow
	err := r.db.GetContext(ctx, &row, `
		SELECT payment_id, status, paid, amount, currency, metadata, created_at
		FROM payments
		WHERE payment_id = $1
	`, paymentID)
	if errors.Is(err, sql.ErrNoRows) {
		return entity.Payment{}, entity.ErrPaymentNotFound
	}
	if err != nil {
		return entity.Payment{}, err
	}

	amount, err := decimal.NewFromString(row.Amount)
	if err != nil {
		return entity.Payment{}, fmt.Errorf("could not parse stored amount %q: %w", row.Amount, err)
	}

	var metadata entity.PaymentMetadata
	if err := json.Unmarshal(row.Metadata, &metadata); err != nil {
		return entity.Payment{}, fmt.Errorf("could not unmarshal payment metadata: %w", err)
	}

	return entity.Payment{
		ID:        row.PaymentID,
		Status:    entity.PaymentStatus(row.Status),
		Paid:      row.Paid,
		Amount:    entity.NewMoney(amount, row.Currency),
		Metadata:  metadata,
		CreatedAt: row.CreatedAt,
	}, nil
}
