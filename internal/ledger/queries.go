package ledger

import (
	"context"
	"sort"

	"github.com/2ellamills/fitness-class/internal/model"
)

// ClassFilter narrows Classes.  Zero fields match everything.
type ClassFilter struct {
	Date          model.Date
	ParticipantID string
}

func (f ClassFilter) match(c *model.ClassOffering) bool {
	if !f.Date.IsZero() && c.Date.Compare(f.Date) != 0 {
		return false
	}
	if f.ParticipantID != "" && !c.HasParticipant(f.ParticipantID) {
		return false
	}
	return true
}

// Classes returns copies of the catalog entries matching f, in seed order.
func (l *Ledger) Classes(f ClassFilter) []model.ClassOffering {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]model.ClassOffering, 0, len(l.classes))
	for i := range l.classes {
		if f.match(&l.classes[i]) {
			out = append(out, l.classes[i].Clone())
		}
	}
	return out
}

// Class returns a copy of one class.
func (l *Ledger) Class(id string) (model.ClassOffering, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	i, ok := l.index[id]
	if !ok {
		return model.ClassOffering{}, ErrClassNotFound
	}
	return l.classes[i].Clone(), nil
}

// ClassDates returns the distinct class days in ascending order.
func (l *Ledger) ClassDates() []model.Date {
	l.mu.Lock()
	defer l.mu.Unlock()

	seen := make(map[string]bool)
	var out []model.Date
	for _, c := range l.classes {
		key := c.Date.String()
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, c.Date)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out
}

// Passes returns every pass the actor owns, used or not, in purchase order.
func (l *Ledger) Passes(ctx context.Context, actor *model.Actor) ([]model.Pass, error) {
	if !present(actor) {
		return []model.Pass{}, nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	acct, err := l.account(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	return append([]model.Pass{}, acct.passes...), nil
}

// Bookings returns the actor's booking records.
func (l *Ledger) Bookings(ctx context.Context, actor *model.Actor) ([]model.BookingRecord, error) {
	if !present(actor) {
		return []model.BookingRecord{}, nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	acct, err := l.account(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	return append([]model.BookingRecord{}, acct.bookings...), nil
}
