package ledger

import (
	"context"

	"github.com/2ellamills/fitness-class/internal/model"
)

// Stats is the admin dashboard summary.
type Stats struct {
	TotalClasses   int                    `json:"total_classes"`
	TotalBookings  int                    `json:"total_bookings"`
	ActivePasses   int                    `json:"active_passes"`
	ClassesByTitle map[string]int         `json:"classes_by_title"`
	PassesByType   map[model.PassType]int `json:"passes_by_type"`
}

// Stats summarises the catalog and the actor's own passes.  TotalBookings
// counts seats taken across all classes; pass figures cover only the actor.
func (l *Ledger) Stats(ctx context.Context, actor *model.Actor) (Stats, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	s := Stats{
		TotalClasses:   len(l.classes),
		ClassesByTitle: make(map[string]int),
		PassesByType:   make(map[model.PassType]int),
	}
	for _, c := range l.classes {
		s.TotalBookings += len(c.Participants)
		s.ClassesByTitle[c.Title]++
	}
	if !present(actor) {
		return s, nil
	}
	acct, err := l.account(ctx, actor.ID)
	if err != nil {
		return Stats{}, err
	}
	for _, p := range acct.passes {
		s.PassesByType[p.Type]++
		if p.Usable() {
			s.ActivePasses++
		}
	}
	return s, nil
}
