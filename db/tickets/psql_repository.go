package tickets

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"boxoffice/entity"
)

type PostgresRepository struct {
	db *sqlx.DB
}

func NewPostgresRepository(db *sqlx.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Store(ctx context.Context, ticket entity.Ticket) error {
	_, err := r.db.NamedExecContext(ctx, `
		INSERT INTO tickets (ticket_id, payment_id, event_id, category_id, issued_at)
		VALUES (:ticket_id, :payment_id, :event_id, :category_id, :issued_at)
		ON CONFLICT DO NOTHING -- ignore if already exists
	`, ticket)
	return err
}

func (r *PostgresRepository) Get(ctx context.Context, ticketID string) (entity.Ticket, error) {
	var ticket entity.Ticket
	err := r.db.GetContext(ctx, &ticket, `
		SELECT ticket_id, payment_id, event_id, category_id, issued_at
		FROM tickets
		WHERE ticket_id = $1
	`, ticketID)
	if errors.Is(err, sql.ErrNoRows) {
		return entity.Ticket{}, entity.ErrTicketNotFound
	}
	return ticket, err
}

func (r *PostgresRepository) FindByPayment(ctx context.Context, paymentID string) ([]entity.Ticket, error) {
	var tickets []entity.Ticket
	err := r.db.SelectContext(ctx, &tickets, `
		SELECT ticket_id, payment_id, event_id, category_id, issued_at
		FROM tickets
		WHERE payment_id = $1
		ORDER BY ticket_id
	`, paymentID)
	return tickets, err
}

func (r *PostgresRepository) FindAll(ctx context.Context) ([]entity.Ticket, error) {
	var tickets []entity.Ticket
	err := r.db.SelectContext(ctx, &tickets, `
		SELECT ticket_id, payment_id, event_id, category_id, issued_at
		FROM tickets
	`)
	return tickets, err
}
