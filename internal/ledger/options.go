package ledger

import (
	"log"

	"github.com/2ellamills/fitness-class/internal/clock"
)

// Option configures a Ledger.
type Option func(*Ledger)

// WithClock overrides the clock used to compute "today" for purchases and
// expiry checks.
func WithClock(c clock.Clock) Option {
	return func(l *Ledger) {
		if c != nil {
			l.clock = c
		}
	}
}

// WithIDGenerator overrides how new pass ids are minted.
func WithIDGenerator(fn func() string) Option {
	return func(l *Ledger) {
		if fn != nil {
			l.newID = fn
		}
	}
}

// WithLogger sets the logger used for persistence failures and anomalies.
func WithLogger(logger *log.Logger) Option {
	return func(l *Ledger) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// WithObserver registers an observer notified after every successful
// mutation.  May be given more than once.
func WithObserver(o Observer) Option {
	return func(l *Ledger) {
		if o != nil {
			l.observers = append(l.observers, o)
		}
	}
}

// WithSkipEmptyWrites restores the legacy persistence policy: a collection
// that became empty is not written, so the stored copy keeps its last
// non-empty value.
func WithSkipEmptyWrites(skip bool) Option {
	return func(l *Ledger) {
		l.skipEmptyWrites = skip
	}
}

// WithRejectExpired makes passes past their expiry date unusable even when
// sessions remain.
func WithRejectExpired(reject bool) Option {
	return func(l *Ledger) {
		l.rejectExpired = reject
	}
}
