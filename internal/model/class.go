package model

// ClassOffering is one scheduled session in the catalog.  Everything except
// Participants is fixed when the catalog is seeded; Participants only changes
// through the ledger's book and cancel operations.
//
// Fields:
//
//	ID           – stable identifier, e.g. class-2025-01-03-1.
//	Title        – class type name shown to users (Yoga Flow, Pilates...).
//	Instructor   – display name of the instructor.
//	Date         – calendar day the class runs on.
//	Time         – local start time as HH:MM.
//	Duration     – length in minutes.
//	Capacity     – maximum number of participants (> 0).
//	Participants – actor ids currently booked, unique, never more than Capacity.
//	ImageURL     – cover image reference.
type ClassOffering struct {
	ID           string   `json:"id" yaml:"id"`
	Title        string   `json:"title" yaml:"title"`
	Description  string   `json:"description" yaml:"description"`
	Instructor   string   `json:"instructor" yaml:"instructor"`
	Date         Date     `json:"date" yaml:"date"`
	Time         string   `json:"time" yaml:"time"`
	Duration     int      `json:"duration" yaml:"duration"`
	Capacity     int      `json:"capacity" yaml:"capacity"`
	Participants []string `json:"participants" yaml:"participants"`
	ImageURL     string   `json:"imageUrl" yaml:"imageUrl"`
}

// SpotsRemaining is the number of seats still open.
func (c ClassOffering) SpotsRemaining() int {
	n := c.Capacity - len(c.Participants)
	if n < 0 {
		return 0
	}
	return n
}

// IsFull reports whether no seat is left.
func (c ClassOffering) IsFull() bool { return len(c.Participants) >= c.Capacity }

// HasParticipant reports whether actorID is booked into the class.
func (c ClassOffering) HasParticipant(actorID string) bool {
	for _, id := range c.Participants {
		if id == actorID {
			return true
		}
	}
	return false
}

// Clone returns a copy whose Participants slice does not alias c's.
func (c ClassOffering) Clone() ClassOffering {
	out := c
	out.Participants = append([]string(nil), c.Participants...)
	if out.Participants == nil {
		out.Participants = []string{}
	}
	return out
}
