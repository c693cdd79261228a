package ledger

import "errors"

// Booking rejections surfaced to callers.  Attempts made without an actor,
// booking a class twice or cancelling a class that was never booked are
// silent no-ops and do not produce an error.
var (
	ErrClassFull       = errors.New("ledger: class is full")
	ErrNoUsablePass    = errors.New("ledger: no usable pass")
	ErrInvalidPassType = errors.New("ledger: invalid pass type")
	ErrClassNotFound   = errors.New("ledger: class not found")
)

// IsBookingRejected reports whether err is a user-facing booking rejection
// (the class is full or the actor has nothing to pay with).
func IsBookingRejected(err error) bool {
	return errors.Is(err, ErrClassFull) || errors.Is(err, ErrNoUsablePass)
}
