// Package session owns the in-progress booking: the form value, the cached
// booked-slot set for the chosen date, and every transition between them.
// All mutation happens through the named methods below; none of them is
// safe for concurrent use — the Runner serializes calls in watch mode, and
// the CLI commands are single-threaded.
package session

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/example/salon-booking/internal/directory"
	"github.com/example/salon-booking/internal/slotgrid"
)

// Directory is the slice of the booking directory the session needs.
type Directory interface {
	BookedSlots(ctx context.Context, date string) ([]string, error)
	CreateBooking(ctx context.Context, nb directory.NewBooking) (directory.Booking, error)
}

// Status is the submission status of the session, not the HTTP lifecycle.
type Status int

const (
	StatusIdle Status = iota
	StatusSubmitting
	StatusSucceeded
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusSubmitting:
		return "submitting"
	case StatusSucceeded:
		return "succeeded"
	case StatusFailed:
		return "failed"
	default:
		return "idle"
	}
}

// Form is the customer-entered part of the session state. Slots is kept
// unique and sorted ascending; zero-padded HH:MM sorts chronologically.
type Form struct {
	Name    string
	Phone   string
	Service string
	Date    time.Time
	Slots   []string
}

// Notice is the top-level form message after a submission.
type Notice struct {
	Success bool
	Text    string
}

type Config struct {
	StartHour       int
	EndHour         int
	IntervalMinutes int
	Services        []string
}

func (c Config) withDefaults() Config {
	if c.StartHour == 0 && c.EndHour == 0 {
		c.StartHour, c.EndHour = slotgrid.DefaultStartHour, slotgrid.DefaultEndHour
	}
	if c.IntervalMinutes == 0 {
		c.IntervalMinutes = slotgrid.DefaultIntervalMinutes
	}
	if len(c.Services) == 0 {
		c.Services = DefaultServices()
	}
	return c
}

// DefaultServices is the salon's catalog when none is configured.
func DefaultServices() []string {
	return []string{
		"Facial Treatment",
		"Hair Styling",
		"Makeup Artistry",
		"Nail Care",
		"Spa & Massage",
		"Bridal Package",
	}
}

// Session holds one in-progress booking.
type Session struct {
	dir   Directory
	clock slotgrid.Clock
	log   *zap.Logger
	cfg   Config
	grid  []string

	form    Form
	booked  []string
	loading bool
	now     time.Time
	errors  map[string]string
	status  Status
	notice  *Notice
}

func New(dir Directory, clock slotgrid.Clock, cfg Config, log *zap.Logger) *Session {
	if clock == nil {
		clock = slotgrid.RealClock{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	cfg = cfg.withDefaults()
	now := clock.Now()
	return &Session{
		dir:    dir,
		clock:  clock,
		log:    log,
		cfg:    cfg,
		grid:   slotgrid.Generate(cfg.StartHour, cfg.EndHour, cfg.IntervalMinutes),
		form:   Form{Date: now},
		now:    now,
		errors: map[string]string{},
	}
}

// Snapshot is a copy of the observable state for rendering.
type Snapshot struct {
	Form         Form
	Booked       []string
	LoadingSlots bool
	Now          time.Time
	Errors       map[string]string
	Status       Status
	Notice       *Notice
	Grid         []string
}

func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		Form:         s.form,
		Booked:       append([]string(nil), s.booked...),
		LoadingSlots: s.loading,
		Now:          s.now,
		Errors:       map[string]string{},
		Status:       s.status,
		Notice:       s.notice,
		Grid:         s.grid,
	}
	snap.Form.Slots = append([]string(nil), s.form.Slots...)
	for k, v := range s.errors {
		snap.Errors[k] = v
	}
	return snap
}

// Services returns the configured service identifiers.
func (s *Session) Services() []string { return s.cfg.Services }

// Classify resolves a grid slot's current state.
func (s *Session) Classify(slot string) slotgrid.Classification {
	return slotgrid.Classify(slot, s.form.Date, s.booked, s.form.Slots, s.now)
}

// SetName, SetPhone and SetService update a field and clear its error, the
// way typing into a field dismisses its inline message.

func (s *Session) SetName(v string) {
	s.form.Name = v
	delete(s.errors, "name")
}

func (s *Session) SetPhone(v string) {
	s.form.Phone = v
	delete(s.errors, "phone")
}

func (s *Session) SetService(v string) {
	s.form.Service = v
	delete(s.errors, "service")
}

// SetDate replaces the booking date. Selections are date-scoped, so the set
// is cleared unconditionally, along with any submission message. The slot
// grid is in a loading state until ApplyBookedSlots lands for this date;
// toggling is disabled meanwhile.
func (s *Session) SetDate(date time.Time) {
	s.form.Date = date
	s.form.Slots = nil
	s.notice = nil
	delete(s.errors, "timeSlots")
	s.booked = nil
	s.loading = true
}

// RefreshBookedSlots fetches the booked set for the session's current date
// and applies it. A fetch failure fails open: the grid shows everything as
// available rather than blocking the form, and the error is only logged.
func (s *Session) RefreshBookedSlots(ctx context.Context) {
	date := slotgrid.FormatDate(s.form.Date)
	s.loading = true
	slots, err := s.dir.BookedSlots(ctx, date)
	if err != nil {
		s.log.Warn("booked slot fetch failed, failing open", zap.String("date", date), zap.Error(err))
		slots = nil
	}
	s.ApplyBookedSlots(date, slots)
}

// ApplyBookedSlots installs a fetched booked set. Each fetch is tagged with
// the date it was issued for; a late response for a date the user has since
// left is discarded so it cannot overwrite the current date's state.
func (s *Session) ApplyBookedSlots(date string, slots []string) {
	if date != slotgrid.FormatDate(s.form.Date) {
		s.log.Debug("discarding stale booked slot response",
			zap.String("response_date", date),
			zap.String("current_date", slotgrid.FormatDate(s.form.Date)),
		)
		return
	}
	s.booked = slots
	s.loading = false
	s.reconcile()
}

// Tick advances the reference clock. Reconciliation only evicts a selection
// when the new clock actually invalidates it; an unchanged set stays
// untouched.
func (s *Session) Tick(now time.Time) {
	s.now = now
	s.reconcile()
}

// reconcile drops every selected slot whose classification has become booked
// or past. The set is replaced once, only when it actually changed; running
// it again with the same inputs is a no-op.
func (s *Session) reconcile() {
	if len(s.form.Slots) == 0 {
		return
	}
	kept := s.form.Slots[:0:0]
	for _, slot := range s.form.Slots {
		switch slotgrid.Classify(slot, s.form.Date, s.booked, nil, s.now) {
		case slotgrid.Booked, slotgrid.Past:
			// evicted
		default:
			kept = append(kept, slot)
		}
	}
	if len(kept) != len(s.form.Slots) {
		s.log.Debug("evicting invalidated selections",
			zap.Int("before", len(s.form.Slots)),
			zap.Int("after", len(kept)),
		)
		s.form.Slots = kept
	}
}

// ToggleSlot selects or deselects a slot. Booked and past slots are inert,
// as is the whole grid while a refresh is outstanding.
func (s *Session) ToggleSlot(slot string) {
	if s.loading {
		return
	}
	switch s.Classify(slot) {
	case slotgrid.Booked, slotgrid.Past:
		return
	}
	delete(s.errors, "timeSlots")
	for i, sel := range s.form.Slots {
		if sel == slot {
			s.form.Slots = append(s.form.Slots[:i], s.form.Slots[i+1:]...)
			return
		}
	}
	s.form.Slots = append(s.form.Slots, slot)
	sort.Strings(s.form.Slots)
}

// Validate checks the form and returns field errors; empty means valid.
func (s *Session) Validate() map[string]string {
	errs := map[string]string{}
	if !ValidateName(s.form.Name) {
		errs["name"] = "Name must be at least 2 characters"
	}
	if !ValidatePhone(s.form.Phone) {
		errs["phone"] = "Phone number must be 10 digits"
	}
	if !containsString(s.cfg.Services, s.form.Service) {
		errs["service"] = "Please select a service"
	}
	if len(s.form.Slots) == 0 {
		errs["timeSlots"] = "Please select at least one time slot"
	}
	return errs
}

// Submit validates and then books every selected slot, one request per slot,
// all in flight at once. On total success the form resets (the chosen date
// stays) and the booked set is refetched so the grid reflects the new
// bookings. On any failure the entered data and selections are kept for
// retry; the booked set is still refetched, so slots that did get through
// are reconciled out of the retry. Returns the first failure in slot order,
// or nil.
func (s *Session) Submit(ctx context.Context) error {
	s.notice = nil
	if errs := s.Validate(); len(errs) > 0 {
		s.errors = errs
		s.status = StatusFailed
		return fmt.Errorf("booking form is invalid")
	}
	s.errors = map[string]string{}
	s.status = StatusSubmitting

	slots := append([]string(nil), s.form.Slots...)
	batch := uuid.NewString()
	date := slotgrid.FormatDate(s.form.Date)
	s.log.Info("submitting bookings",
		zap.String("batch", batch),
		zap.String("date", date),
		zap.Int("slots", len(slots)),
	)

	results := make([]error, len(slots))
	var wg sync.WaitGroup
	for i, slot := range slots {
		wg.Add(1)
		go func(i int, slot string) {
			defer wg.Done()
			_, err := s.dir.CreateBooking(ctx, directory.NewBooking{
				Name:     trimmed(s.form.Name),
				Phone:    trimmed(s.form.Phone),
				Service:  s.form.Service,
				Date:     date,
				TimeSlot: slot,
				Status:   directory.StatusConfirmed,
			})
			results[i] = err
		}(i, slot)
	}
	wg.Wait()

	var firstErr error
	for _, err := range results {
		if err != nil {
			firstErr = err
			break
		}
	}

	if firstErr != nil {
		s.status = StatusFailed
		text := "Failed to create booking. Please try again."
		if msg, ok := directory.ServerMessage(firstErr); ok {
			text = msg
		}
		s.notice = &Notice{Success: false, Text: text}
		s.log.Warn("booking submission failed", zap.String("batch", batch), zap.Error(firstErr))
		// Some requests may have landed; refetching lets reconciliation
		// evict them so a retry only resubmits the rest.
		s.RefreshBookedSlots(ctx)
		return firstErr
	}

	s.status = StatusSucceeded
	s.notice = &Notice{Success: true, Text: successText(len(slots))}
	s.log.Info("booking submission succeeded", zap.String("batch", batch), zap.Int("slots", len(slots)))

	s.form = Form{Date: s.form.Date}
	s.RefreshBookedSlots(ctx)
	return nil
}

func successText(n int) string {
	if n == 1 {
		return "Successfully booked 1 time slot!"
	}
	return fmt.Sprintf("Successfully booked %d time slots!", n)
}

func containsString(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
