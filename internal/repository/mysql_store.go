package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// MySQLStore persists ledger blobs in the kv_store table created by
// database.Migrate.  Each key is one row; Set upserts.
type MySQLStore struct {
	DB *sql.DB
}

func NewMySQLStore(db *sql.DB) *MySQLStore { return &MySQLStore{DB: db} }

const (
	kvSelectQuery = `SELECT v FROM kv_store WHERE k = ? LIMIT 1`
	kvUpsertQuery = `INSERT INTO kv_store (k, v) VALUES (?, ?) ON DUPLICATE KEY UPDATE v = VALUES(v)`
)

func (s *MySQLStore) Get(ctx context.Context, key string) ([]byte, error) {
	var v []byte
	err := s.DB.QueryRowContext(ctx, kvSelectQuery, key).Scan(&v)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrKeyNotFound
		}
		return nil, fmt.Errorf("select %s: %w", key, err)
	}
	return v, nil
}

func (s *MySQLStore) Set(ctx context.Context, key string, value []byte) error {
	if _, err := s.DB.ExecContext(ctx, kvUpsertQuery, key, value); err != nil {
		return fmt.Errorf("upsert %s: %w", key, err)
	}
	return nil
}
