package model

// BookingRecord remembers which pass paid for a booked class so that
// cancelling the booking refunds the same pass.  At most one record exists
// per class for a given actor.
type BookingRecord struct {
	ClassID string `json:"classId"`
	PassID  string `json:"passId"`
}
