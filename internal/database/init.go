package database

import (
	"context"
	"fmt"

	"github.com/yourusername/early-innings/internal/config"
)

const schema = `
CREATE TABLE IF NOT EXISTS prediction_sets (
	date         DATE PRIMARY KEY,
	generated_at TIMESTAMPTZ NOT NULL,
	fixtures     INTEGER NOT NULL,
	payload      JSONB NOT NULL,
	updated_at   TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS predictions (
	date            DATE NOT NULL REFERENCES prediction_sets (date) ON DELETE CASCADE,
	prediction_type TEXT NOT NULL,
	home_team       TEXT NOT NULL,
	away_team       TEXT NOT NULL,
	probability     NUMERIC(4, 1) NOT NULL,
	rating          TEXT NOT NULL,
	data_source     TEXT NOT NULL,
	PRIMARY KEY (date, prediction_type, home_team, away_team)
);

CREATE INDEX IF NOT EXISTS predictions_rating_idx ON predictions (date, rating);
`

// Initialize connects to the archive and creates its tables when missing
func Initialize(ctx context.Context, cfg *config.Config) (*DB, error) {
	db, err := NewDB(ctx, &cfg.Archive)
	if err != nil {
		return nil, err
	}

	if err := EnsureSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// EnsureSchema creates the archive tables if they do not exist
func EnsureSchema(ctx context.Context, db *DB) error {
	if _, err := db.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("failed to create archive schema: %w", err)
	}
	return nil
}
