package repository

import (
	"context"
	"errors"
)

// ErrKeyNotFound is returned by KVStore.Get when nothing has been stored
// under the key yet.  Callers treat it as "empty", not as a failure.
var ErrKeyNotFound = errors.New("key not found")

// KVStore is the durable key-value contract the ledger persists through.
// Values are opaque JSON blobs; keys are scoped by actor id (see PassesKey
// and BookingsKey).
type KVStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}

// PassesKey is the key holding an actor's pass list.
func PassesKey(actorID string) string { return "passes:" + actorID }

// BookingsKey is the key holding an actor's booking records.
func BookingsKey(actorID string) string { return "bookings:" + actorID }
