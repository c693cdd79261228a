package database

import (
	"context"
	"database/sql"
	"fmt"
)

// KVSchema is the single table behind the MySQL ledger store.  Keys are
// "passes:<actor>" and "bookings:<actor>", values are JSON lists.
const KVSchema = `CREATE TABLE IF NOT EXISTS kv_store (
  k VARCHAR(191) NOT NULL PRIMARY KEY,
  v LONGBLOB NOT NULL,
  updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`

// Migrate creates the schema if it does not exist yet.
func Migrate(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, KVSchema); err != nil {
		return fmt.Errorf("migrate kv_store: %w", err)
	}
	return nil
}
