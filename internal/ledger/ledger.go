// Package ledger is the booking ledger: it owns the class catalog, every
// actor's passes and the records linking a booked class to the pass that
// paid for it.  All operations are serialised by a single mutex, so the
// capacity check, pass selection and the resulting writes happen as one
// atomic step even when requests arrive concurrently.
package ledger

import (
	"context"
	"log"
	"sync"

	"github.com/google/uuid"

	"github.com/2ellamills/fitness-class/internal/clock"
	"github.com/2ellamills/fitness-class/internal/model"
)

// Repository loads and stores an actor's passes and booking records.
// repository.LedgerRepo is the production implementation.
type Repository interface {
	LoadPasses(ctx context.Context, actorID string) ([]model.Pass, error)
	SavePasses(ctx context.Context, actorID string, passes []model.Pass) error
	LoadBookings(ctx context.Context, actorID string) ([]model.BookingRecord, error)
	SaveBookings(ctx context.Context, actorID string, records []model.BookingRecord) error
}

// Ledger is the booking state manager.  The zero value is not usable; call New.
type Ledger struct {
	mu       sync.Mutex
	classes  []model.ClassOffering
	index    map[string]int
	accounts map[string]*account

	repo      Repository
	clock     clock.Clock
	newID     func() string
	logger    *log.Logger
	observers []Observer

	skipEmptyWrites bool
	rejectExpired   bool
}

// account is the per-actor slice of ledger state, loaded from the
// repository the first time the actor is seen.
type account struct {
	passes   []model.Pass
	bookings []model.BookingRecord
}

// New builds a ledger over the seeded catalog.  The catalog is copied and
// kept in the given order; when two classes share an id only the first is
// addressable.  repo may be nil, in which case state lives in memory only.
func New(classes []model.ClassOffering, repo Repository, opts ...Option) *Ledger {
	l := &Ledger{
		classes:  make([]model.ClassOffering, 0, len(classes)),
		index:    make(map[string]int, len(classes)),
		accounts: make(map[string]*account),
		repo:     repo,
		clock:    clock.NewSystem(),
		newID:    func() string { return "pass-" + uuid.NewString() },
		logger:   log.Default(),
	}
	for _, opt := range opts {
		opt(l)
	}
	for _, c := range classes {
		if _, dup := l.index[c.ID]; dup {
			l.logger.Printf("ledger: duplicate class id=%s ignored", c.ID)
			continue
		}
		l.index[c.ID] = len(l.classes)
		l.classes = append(l.classes, c.Clone())
	}
	return l
}

// ListUsablePasses returns the actor's passes that still have sessions left.
// The order is unspecified.  A nil actor has no passes.
func (l *Ledger) ListUsablePasses(ctx context.Context, actor *model.Actor) ([]model.Pass, error) {
	if !present(actor) {
		return []model.Pass{}, nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	acct, err := l.account(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	today := model.NewDate(clock.Today(l.clock))
	out := make([]model.Pass, 0, len(acct.passes))
	for _, p := range acct.passes {
		if l.usable(p, today) {
			out = append(out, p)
		}
	}
	return out, nil
}

// BookClass books the actor into classID, paying with the usable pass that
// expires first (ties go to the lowest pass id).  It is a no-op when there
// is no actor, the class does not exist or the actor is already booked.
// ErrClassFull and ErrNoUsablePass leave every piece of state untouched.
func (l *Ledger) BookClass(ctx context.Context, actor *model.Actor, classID string) (model.ClassOffering, error) {
	if !present(actor) {
		return model.ClassOffering{}, nil
	}
	l.mu.Lock()

	// Load first so seats restored from persisted records count below.
	acct, err := l.account(ctx, actor.ID)
	if err != nil {
		l.mu.Unlock()
		return model.ClassOffering{}, err
	}
	i, ok := l.index[classID]
	if !ok {
		l.mu.Unlock()
		return model.ClassOffering{}, nil
	}
	cls := &l.classes[i]
	if cls.HasParticipant(actor.ID) {
		snapshot := cls.Clone()
		l.mu.Unlock()
		return snapshot, nil
	}
	if cls.IsFull() {
		snapshot := cls.Clone()
		l.mu.Unlock()
		return snapshot, ErrClassFull
	}

	pi := l.pickPass(acct.passes, model.NewDate(clock.Today(l.clock)))
	if pi < 0 {
		snapshot := cls.Clone()
		l.mu.Unlock()
		return snapshot, ErrNoUsablePass
	}

	pass := &acct.passes[pi]
	pass.RemainingSessions--
	acct.bookings = upsertRecord(acct.bookings, model.BookingRecord{ClassID: classID, PassID: pass.ID})
	cls.Participants = append(cls.Participants, actor.ID)

	l.savePasses(ctx, actor.ID, acct.passes)
	l.saveBookings(ctx, actor.ID, acct.bookings)

	ev := l.classEvent(EventClassBooked, actor.ID, cls)
	ev.PassID = pass.ID
	ev.PassType = pass.Type
	ev.RemainingSessions = pass.RemainingSessions
	snapshot := cls.Clone()
	l.mu.Unlock()

	l.notify(ctx, ev)
	return snapshot, nil
}

// CancelBooking releases the actor's seat in classID and refunds the pass
// recorded for that booking.  Cancelling a class the actor is not booked
// into is a no-op.  A booking without a record still releases the seat but
// refunds nothing; the inconsistency is logged.
func (l *Ledger) CancelBooking(ctx context.Context, actor *model.Actor, classID string) (model.ClassOffering, error) {
	if !present(actor) {
		return model.ClassOffering{}, nil
	}
	l.mu.Lock()

	acct, err := l.account(ctx, actor.ID)
	if err != nil {
		l.mu.Unlock()
		return model.ClassOffering{}, err
	}
	i, ok := l.index[classID]
	if !ok {
		l.mu.Unlock()
		return model.ClassOffering{}, nil
	}
	cls := &l.classes[i]
	if !cls.HasParticipant(actor.ID) {
		snapshot := cls.Clone()
		l.mu.Unlock()
		return snapshot, nil
	}

	ev := l.classEvent(EventBookingCancelled, actor.ID, cls)
	if ri := findRecord(acct.bookings, classID); ri >= 0 {
		rec := acct.bookings[ri]
		ev.PassID = rec.PassID
		if pi := findPass(acct.passes, rec.PassID); pi >= 0 {
			acct.passes[pi].RemainingSessions++
			ev.PassType = acct.passes[pi].Type
			ev.RemainingSessions = acct.passes[pi].RemainingSessions
			ev.Refunded = true
			l.savePasses(ctx, actor.ID, acct.passes)
		} else {
			l.logger.Printf("ledger: booking record for class=%s actor=%s names unknown pass=%s, no refund", classID, actor.ID, rec.PassID)
		}
		acct.bookings = append(acct.bookings[:ri], acct.bookings[ri+1:]...)
		l.saveBookings(ctx, actor.ID, acct.bookings)
	} else {
		l.logger.Printf("ledger: no booking record for class=%s actor=%s, releasing seat without refund", classID, actor.ID)
	}
	cls.Participants = removeID(cls.Participants, actor.ID)

	snapshot := cls.Clone()
	l.mu.Unlock()

	l.notify(ctx, ev)
	return snapshot, nil
}

// PurchasePass creates a new pass of type t for the actor, valid from today
// for the type's validity window.  A nil actor is a no-op and returns the
// zero Pass.
func (l *Ledger) PurchasePass(ctx context.Context, actor *model.Actor, t model.PassType) (model.Pass, error) {
	prod, ok := model.ProductFor(t)
	if !ok {
		return model.Pass{}, ErrInvalidPassType
	}
	if !present(actor) {
		return model.Pass{}, nil
	}
	l.mu.Lock()

	acct, err := l.account(ctx, actor.ID)
	if err != nil {
		l.mu.Unlock()
		return model.Pass{}, err
	}
	today := model.NewDate(clock.Today(l.clock))
	pass := model.Pass{
		ID:                l.newID(),
		UserID:            actor.ID,
		Type:              prod.Type,
		RemainingSessions: prod.Sessions,
		ExpiryDate:        today.AddDays(prod.ValidityDays),
	}
	acct.passes = append(acct.passes, pass)
	l.savePasses(ctx, actor.ID, acct.passes)
	l.mu.Unlock()

	l.notify(ctx, Event{
		Type:              EventPassPurchased,
		ActorID:           actor.ID,
		PassID:            pass.ID,
		PassType:          pass.Type,
		RemainingSessions: pass.RemainingSessions,
		OccurredAt:        l.clock.Now(),
	})
	return pass, nil
}

// account returns the actor's state, loading it on first use.  A failed load
// is not cached so the next call retries.  Must be called with l.mu held.
func (l *Ledger) account(ctx context.Context, actorID string) (*account, error) {
	if acct, ok := l.accounts[actorID]; ok {
		return acct, nil
	}
	acct := &account{}
	if l.repo != nil {
		passes, err := l.repo.LoadPasses(ctx, actorID)
		if err != nil {
			return nil, err
		}
		records, err := l.repo.LoadBookings(ctx, actorID)
		if err != nil {
			return nil, err
		}
		acct.passes = passes
		acct.bookings = records
	}
	l.accounts[actorID] = acct
	l.restoreSeats(ctx, actorID, acct)
	return acct, nil
}

// restoreSeats re-applies persisted booking records to the in-memory
// catalog, which starts with no participants after a restart.  A record
// whose class has no seat left is refunded and dropped.  Records for classes
// absent from the catalog are kept untouched.
func (l *Ledger) restoreSeats(ctx context.Context, actorID string, acct *account) {
	if len(acct.bookings) == 0 {
		return
	}
	kept := acct.bookings[:0]
	refunded := false
	seen := make(map[string]bool, len(acct.bookings))
	for _, rec := range acct.bookings {
		if seen[rec.ClassID] {
			l.logger.Printf("ledger: duplicate booking record class=%s actor=%s dropped", rec.ClassID, actorID)
			continue
		}
		seen[rec.ClassID] = true
		i, ok := l.index[rec.ClassID]
		if !ok {
			kept = append(kept, rec)
			continue
		}
		cls := &l.classes[i]
		switch {
		case cls.HasParticipant(actorID):
			kept = append(kept, rec)
		case !cls.IsFull():
			cls.Participants = append(cls.Participants, actorID)
			kept = append(kept, rec)
		default:
			if pi := findPass(acct.passes, rec.PassID); pi >= 0 {
				acct.passes[pi].RemainingSessions++
				refunded = true
			}
			l.logger.Printf("ledger: class=%s full on restore, refunded booking for actor=%s", rec.ClassID, actorID)
		}
	}
	changed := len(kept) != len(acct.bookings)
	acct.bookings = kept
	if changed {
		l.saveBookings(ctx, actorID, acct.bookings)
	}
	if refunded {
		l.savePasses(ctx, actorID, acct.passes)
	}
}

// pickPass returns the index of the usable pass expiring soonest, or -1.
func (l *Ledger) pickPass(passes []model.Pass, today model.Date) int {
	best := -1
	for i, p := range passes {
		if !l.usable(p, today) {
			continue
		}
		if best < 0 {
			best = i
			continue
		}
		b := passes[best]
		if c := p.ExpiryDate.Compare(b.ExpiryDate); c < 0 || (c == 0 && p.ID < b.ID) {
			best = i
		}
	}
	return best
}

func (l *Ledger) usable(p model.Pass, today model.Date) bool {
	if !p.Usable() {
		return false
	}
	if l.rejectExpired && p.ExpiredOn(today) {
		return false
	}
	return true
}

// savePasses and saveBookings write through to the repository.  Failures
// are logged and do not undo the in-memory change.
func (l *Ledger) savePasses(ctx context.Context, actorID string, passes []model.Pass) {
	if l.repo == nil || (l.skipEmptyWrites && len(passes) == 0) {
		return
	}
	if err := l.repo.SavePasses(context.WithoutCancel(ctx), actorID, passes); err != nil {
		l.logger.Printf("ledger: save passes actor=%s: %v", actorID, err)
	}
}

func (l *Ledger) saveBookings(ctx context.Context, actorID string, records []model.BookingRecord) {
	if l.repo == nil || (l.skipEmptyWrites && len(records) == 0) {
		return
	}
	if err := l.repo.SaveBookings(context.WithoutCancel(ctx), actorID, records); err != nil {
		l.logger.Printf("ledger: save bookings actor=%s: %v", actorID, err)
	}
}

func (l *Ledger) classEvent(t EventType, actorID string, cls *model.ClassOffering) Event {
	return Event{
		Type:       t,
		ActorID:    actorID,
		ClassID:    cls.ID,
		ClassTitle: cls.Title,
		ClassDate:  cls.Date.String(),
		ClassTime:  cls.Time,
		OccurredAt: l.clock.Now(),
	}
}

func present(actor *model.Actor) bool { return actor != nil && actor.ID != "" }

func findRecord(records []model.BookingRecord, classID string) int {
	for i, r := range records {
		if r.ClassID == classID {
			return i
		}
	}
	return -1
}

func findPass(passes []model.Pass, passID string) int {
	for i, p := range passes {
		if p.ID == passID {
			return i
		}
	}
	return -1
}

// upsertRecord keeps at most one record per class.
func upsertRecord(records []model.BookingRecord, rec model.BookingRecord) []model.BookingRecord {
	if i := findRecord(records, rec.ClassID); i >= 0 {
		records[i] = rec
		return records
	}
	return append(records, rec)
}

func removeID(ids []string, id string) []string {
	out := ids[:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
