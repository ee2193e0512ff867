// internal/repository/postgres/schema.go
package postgres

import (
	"context"
	"fmt"

	"exercise-tracker/pkg/db"
)

// seq preserves insertion order; ids are UUID strings.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		seq        BIGSERIAL,
		id         TEXT PRIMARY KEY,
		username   TEXT NOT NULL UNIQUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS exercises (
		seq         BIGSERIAL,
		id          TEXT PRIMARY KEY,
		username    TEXT NOT NULL,
		description TEXT NOT NULL,
		duration    NUMERIC NOT NULL,
		date        TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS exercises_username_date_idx ON exercises (username, date)`,
}

// EnsureSchema creates the tables and indexes if they do not exist yet.
func EnsureSchema(ctx context.Context, conn db.DBTxBeginner) error {
	if err := db.ExecInTx(ctx, conn, schemaStatements...); err != nil {
		return fmt.Errorf("failed to ensure schema: %w", err)
	}
	return nil
}
