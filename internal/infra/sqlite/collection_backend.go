package sqlite

import (
	"context"
	"database/sql"
	"time"
)

// CollectionBackend stores each collection as one JSON document row.
type CollectionBackend struct {
	db *sql.DB
}

func NewCollectionBackend(db *sql.DB) *CollectionBackend {
	return &CollectionBackend{db: db}
}

func (r *CollectionBackend) Get(ctx context.Context, collection string) ([]byte, bool, error) {
	query := `SELECT data FROM collections WHERE name = ?`
	row := r.db.QueryRowContext(ctx, query, collection)

	var data []byte
	err := row.Scan(&data)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

func (r *CollectionBackend) Put(ctx context.Context, collection string, data []byte) error {
	query := `
		INSERT INTO collections (name, data, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			data = excluded.data,
			updated_at = excluded.updated_at
	`
	_, err := r.db.ExecContext(ctx, query, collection, data, time.Now().UTC().Format(time.RFC3339))
	return err
}

func (r *CollectionBackend) Delete(ctx context.Context, collection string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM collections WHERE name = ?`, collection)
	return err
}

func (r *CollectionBackend) InitTable(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS collections (
			name TEXT PRIMARY KEY,
			data BLOB NOT NULL,
			updated_at TEXT
		);
	`
	_, err := r.db.ExecContext(ctx, query)
	return err
}
