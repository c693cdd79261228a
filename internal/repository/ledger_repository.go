package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/2ellamills/fitness-class/internal/model"
)

// LedgerRepo reads and writes an actor's passes and booking records as JSON
// lists on top of any KVStore.  A missing key loads as an empty list.
type LedgerRepo struct {
	KV KVStore
}

func NewLedgerRepo(kv KVStore) *LedgerRepo { return &LedgerRepo{KV: kv} }

func (r *LedgerRepo) LoadPasses(ctx context.Context, actorID string) ([]model.Pass, error) {
	var passes []model.Pass
	if err := r.load(ctx, PassesKey(actorID), &passes); err != nil {
		return nil, err
	}
	return passes, nil
}

func (r *LedgerRepo) SavePasses(ctx context.Context, actorID string, passes []model.Pass) error {
	if passes == nil {
		passes = []model.Pass{}
	}
	return r.save(ctx, PassesKey(actorID), passes)
}

func (r *LedgerRepo) LoadBookings(ctx context.Context, actorID string) ([]model.BookingRecord, error) {
	var records []model.BookingRecord
	if err := r.load(ctx, BookingsKey(actorID), &records); err != nil {
		return nil, err
	}
	return records, nil
}

func (r *LedgerRepo) SaveBookings(ctx context.Context, actorID string, records []model.BookingRecord) error {
	if records == nil {
		records = []model.BookingRecord{}
	}
	return r.save(ctx, BookingsKey(actorID), records)
}

func (r *LedgerRepo) load(ctx context.Context, key string, dst interface{}) error {
	b, err := r.KV.Get(ctx, key)
	if err != nil {
		if errors.Is(err, ErrKeyNotFound) {
			return nil
		}
		return err
	}
	if len(b) == 0 {
		return nil
	}
	if err := json.Unmarshal(b, dst); err != nil {
		return fmt.Errorf("decode %s: %w", key, err)
	}
	return nil
}

func (r *LedgerRepo) save(ctx context.Context, key string, v interface{}) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return r.KV.Set(ctx, key, b)
}
