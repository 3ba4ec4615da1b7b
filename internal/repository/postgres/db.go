// Package postgres implements storage ports on PostgreSQL via database/sql and lib/pq.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
)

// Schema creates the tables used by this package. It is safe to run repeatedly.
const Schema = `
CREATE TABLE IF NOT EXISTS events (
	id          BIGSERIAL PRIMARY KEY,
	title       TEXT NOT NULL,
	description TEXT NOT NULL,
	date        TEXT NOT NULL,
	location    TEXT NOT NULL,
	category    TEXT NOT NULL,
	likes       INTEGER NOT NULL DEFAULT 0 CHECK (likes >= 0),
	created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

// Open connects to dsn with the lib/pq driver, verifies the connection and applies Schema.
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if err := Migrate(ctx, db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// Migrate applies Schema.
func Migrate(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, Schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}
