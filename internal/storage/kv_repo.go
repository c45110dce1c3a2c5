package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_kv_store.go -package=mocks inkwell/internal/storage KVStore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a record is not found.
	ErrNotFound = errors.New("record not found")
)

// KVStore defines the interface for the persistent key-value byte store the
// journal collections are mirrored into.
type KVStore interface {
	// Get returns the value stored under key.
	// Returns nil and ErrNotFound if the key has never been written.
	Get(ctx context.Context, key string) ([]byte, error)
	// Put stores value under key, replacing any previous value.
	Put(ctx context.Context, key string, value []byte) error
	// Delete removes the key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}

// KVRepo provides key-value operations backed by SQLite.
// It implements the KVStore interface.
type KVRepo struct {
	db *sql.DB
}

// NewKVRepo creates a new KVRepo.
func NewKVRepo(db *sql.DB) *KVRepo {
	return &KVRepo{db: db}
}

// Get returns the value stored under key.
// Returns nil and ErrNotFound if the key has never been written.
func (r *KVRepo) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := r.db.QueryRowContext(ctx,
		"SELECT value FROM kv WHERE key = ?", key,
	).Scan(&value)

	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query key %q: %w", key, err)
	}

	return value, nil
}

// Put stores value under key, replacing any previous value.
func (r *KVRepo) Put(ctx context.Context, key string, value []byte) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO kv (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT (key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("failed to put key %q: %w", key, err)
	}

	return nil
}

// Delete removes the key. Deleting an absent key is not an error.
func (r *KVRepo) Delete(ctx context.Context, key string) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM kv WHERE key = ?", key); err != nil {
		return fmt.Errorf("failed to delete key %q: %w", key, err)
	}
	return nil
}
