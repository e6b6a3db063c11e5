package db

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

func Open(postgresURL string) (*sqlx.DB, error) {
	db, err := sqlx.Open("postgres", postgresURL)
	if err != nil {
		return nil, fmt.Errorf("could not open postgres connection: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("could not ping postgres: %w", err)
	}
	return db, nil
}

func InitializeDatabaseSchema(db *sqlx.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS payments (
			payment_id VARCHAR(255) PRIMARY KEY,
			status VARCHAR(50) NOT NULL,
			paid BOOLEAN NOT NULL DEFAULT FALSE,
			amount VARCHAR(50) NOT NULL,
			currency VARCHAR(10) NOT NULL,
			metadata JSONB NOT NULL DEFAULT '{}',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);

		CREATE TABLE IF NOT EXISTS tickets (
			ticket_id VARCHAR(255) PRIMARY KEY,
			payment_id VARCHAR(255) NOT NULL DEFAULT '',
			event_id VARCHAR(255) NOT NULL,
			category_id VARCHAR(255) NOT NULL,
			issued_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);

		CREATE TABLE IF NOT EXISTS fulfillments (
			payment_id VARCHAR(255) PRIMARY KEY,
			ticket_ids TEXT[] NOT NULL,
			fulfilled_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
	`)
	if err != nil {
		return fmt.Errorf("could not initialize database schema: %w", err)
	}
	return nil
}
