package storage

import (
	"context"
	"database/sql"
	"fmt"
)

// PostgresStore persists snapshots in a single key-value table.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore creates the snapshots table if needed and returns a store
// backed by the given database connection.
func NewPostgresStore(db *sql.DB) (*PostgresStore, error) {
	query := `
		CREATE TABLE IF NOT EXISTS snapshots (
			key        TEXT PRIMARY KEY,
			value      JSONB NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)
	`

	if _, err := db.Exec(query); err != nil {
		return nil, fmt.Errorf("failed to create snapshots table: %w", err)
	}

	return &PostgresStore{db: db}, nil
}

// Load returns the snapshot stored under key.
func (s *PostgresStore) Load(ctx context.Context, key string) ([]byte, bool, error) {
	query := `SELECT value FROM snapshots WHERE key = $1`

	var value []byte
	err := s.db.QueryRowContext(ctx, query, key).Scan(&value)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to load snapshot %s: %w", key, err)
	}

	return value, true, nil
}

// Save upserts the snapshot under key.
func (s *PostgresStore) Save(ctx context.Context, key string, value []byte) error {
	query := `
		INSERT INTO snapshots (key, value, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE SET value = $2, updated_at = now()
	`

	if _, err := s.db.ExecContext(ctx, query, key, value); err != nil {
		return fmt.Errorf("failed to save snapshot %s: %w", key, err)
	}

	return nil
}

// Close closes the underlying database connection.
func (s *PostgresStore) Close() error {
	return s.db.Close()
}
