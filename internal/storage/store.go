// Package storage provides the durable key-value store that ledger state is
// snapshotted into. Services serialize their full state and save it under a
// fixed key after every mutation; on startup they load the snapshot back.
// This abstraction allows swapping storage backends without touching the
// services.
package storage

import "context"

// Store is the persistence collaborator for state snapshots.
type Store interface {
	// Load returns the snapshot stored under key. The second return value is
	// false when no snapshot exists yet.
	Load(ctx context.Context, key string) ([]byte, bool, error)

	// Save writes the snapshot under key, replacing any previous value.
	Save(ctx context.Context, key string, value []byte) error

	// Close releases any resources held by the store.
	Close() error
}
