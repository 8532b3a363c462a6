package session

import (
	"context"
	"errors"
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/example/salon-booking/internal/directory"
	"github.com/example/salon-booking/internal/slotgrid"
)

type fixedClock struct{ at time.Time }

func (c fixedClock) Now() time.Time { return c.at }

// fakeDirectory scripts the two calls the session makes.
type fakeDirectory struct {
	mu sync.Mutex

	booked    map[string][]string
	bookedErr error

	created   []directory.NewBooking
	createErr map[string]error // by slot
}

func (f *fakeDirectory) BookedSlots(_ context.Context, date string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.bookedErr != nil {
		return nil, f.bookedErr
	}
	return f.booked[date], nil
}

func (f *fakeDirectory) CreateBooking(_ context.Context, nb directory.NewBooking) (directory.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.createErr[nb.TimeSlot]; err != nil {
		return directory.Booking{}, err
	}
	f.created = append(f.created, nb)
	if f.booked == nil {
		f.booked = map[string][]string{}
	}
	f.booked[nb.Date] = append(f.booked[nb.Date], nb.TimeSlot)
	return directory.Booking{ID: "id-" + nb.TimeSlot, TimeSlot: nb.TimeSlot}, nil
}

func mustTime(t *testing.T, year int, month time.Month, day, hour, min int) time.Time {
	t.Helper()
	return time.Date(year, month, day, hour, min, 0, 0, time.UTC)
}

func newTestSession(t *testing.T, dir *fakeDirectory, now time.Time) *Session {
	t.Helper()
	return New(dir, fixedClock{at: now}, Config{}, nil)
}

func fillValidForm(s *Session) {
	s.SetName("Jo Smith")
	s.SetPhone("555-012-3456")
	s.SetService("Hair Styling")
}

func TestNewSession_StartsTodayEmpty(t *testing.T) {
	now := mustTime(t, 2026, 8, 31, 9, 0)
	s := newTestSession(t, &fakeDirectory{}, now)

	snap := s.Snapshot()
	if slotgrid.FormatDate(snap.Form.Date) != "2026-08-31" {
		t.Fatalf("expected today's date, got %s", slotgrid.FormatDate(snap.Form.Date))
	}
	if len(snap.Form.Slots) != 0 || snap.Status != StatusIdle {
		t.Fatalf("expected empty idle session, got %+v", snap)
	}
	if len(snap.Grid) != 18 {
		t.Fatalf("expected default 18-slot grid, got %d", len(snap.Grid))
	}
}

func TestSetDate_ClearsSelectionsAndDisablesToggling(t *testing.T) {
	now := mustTime(t, 2026, 8, 31, 9, 0)
	s := newTestSession(t, &fakeDirectory{}, now)
	s.RefreshBookedSlots(context.Background())
	s.ToggleSlot("10:00")
	s.ToggleSlot("10:30")
	if got := len(s.Snapshot().Form.Slots); got != 2 {
		t.Fatalf("expected 2 selections, got %d", got)
	}

	s.SetDate(mustTime(t, 2026, 9, 1, 0, 0))
	snap := s.Snapshot()
	if len(snap.Form.Slots) != 0 {
		t.Fatalf("date change must clear selections, got %v", snap.Form.Slots)
	}
	if !snap.LoadingSlots {
		t.Fatalf("expected loading state after date change")
	}

	// toggling is inert while the refresh is outstanding
	s.ToggleSlot("11:00")
	if got := len(s.Snapshot().Form.Slots); got != 0 {
		t.Fatalf("toggle during refresh must be a no-op, got %d selections", got)
	}
}

func TestApplyBookedSlots_DiscardsStaleResponse(t *testing.T) {
	now := mustTime(t, 2026, 8, 31, 9, 0)
	s := newTestSession(t, &fakeDirectory{}, now)

	s.SetDate(mustTime(t, 2026, 9, 1, 0, 0))
	s.SetDate(mustTime(t, 2026, 9, 2, 0, 0))

	// late response for the date the user already left
	s.ApplyBookedSlots("2026-09-01", []string{"10:00"})
	snap := s.Snapshot()
	if len(snap.Booked) != 0 {
		t.Fatalf("stale response must be discarded, got booked=%v", snap.Booked)
	}
	if !snap.LoadingSlots {
		t.Fatalf("grid must stay loading until the current date's response lands")
	}

	s.ApplyBookedSlots("2026-09-02", []string{"11:00"})
	snap = s.Snapshot()
	if !reflect.DeepEqual(snap.Booked, []string{"11:00"}) || snap.LoadingSlots {
		t.Fatalf("current date's response must apply, got %+v", snap)
	}
}

func TestRefresh_FailsOpenOnError(t *testing.T) {
	now := mustTime(t, 2026, 8, 31, 9, 0)
	dir := &fakeDirectory{bookedErr: errors.New("directory unreachable")}
	s := newTestSession(t, dir, now)

	s.RefreshBookedSlots(context.Background())
	snap := s.Snapshot()
	if len(snap.Booked) != 0 {
		t.Fatalf("fetch failure must fail open to an empty booked set, got %v", snap.Booked)
	}
	if snap.LoadingSlots {
		t.Fatalf("grid must leave the loading state after a failed fetch")
	}
	if snap.Notice != nil {
		t.Fatalf("availability failures must not surface to the user, got %+v", snap.Notice)
	}
}

func TestToggleSlot_IgnoresBookedAndPast(t *testing.T) {
	now := mustTime(t, 2026, 8, 31, 14, 5)
	dir := &fakeDirectory{booked: map[string][]string{"2026-08-31": {"15:00"}}}
	s := newTestSession(t, dir, now)
	s.RefreshBookedSlots(context.Background())

	s.ToggleSlot("14:00") // past at 14:05
	s.ToggleSlot("15:00") // booked
	if got := s.Snapshot().Form.Slots; len(got) != 0 {
		t.Fatalf("expected no selections, got %v", got)
	}

	s.ToggleSlot("16:00")
	s.ToggleSlot("14:30")
	got := s.Snapshot().Form.Slots
	if !reflect.DeepEqual(got, []string{"14:30", "16:00"}) {
		t.Fatalf("expected sorted selections [14:30 16:00], got %v", got)
	}

	s.ToggleSlot("16:00") // deselect
	got = s.Snapshot().Form.Slots
	if !reflect.DeepEqual(got, []string{"14:30"}) {
		t.Fatalf("expected [14:30] after deselect, got %v", got)
	}
}

func TestReconcile_EvictsNewlyBookedSlot(t *testing.T) {
	now := mustTime(t, 2026, 8, 31, 9, 0)
	dir := &fakeDirectory{booked: map[string][]string{}}
	s := newTestSession(t, dir, now)
	s.RefreshBookedSlots(context.Background())

	s.ToggleSlot("10:00")
	s.ToggleSlot("10:30")

	// "10:00" just got booked by someone else
	s.ApplyBookedSlots("2026-08-31", []string{"10:00"})
	got := s.Snapshot().Form.Slots
	if !reflect.DeepEqual(got, []string{"10:30"}) {
		t.Fatalf("expected [10:30] after eviction, got %v", got)
	}
}

func TestReconcile_Idempotent(t *testing.T) {
	now := mustTime(t, 2026, 8, 31, 9, 0)
	s := newTestSession(t, &fakeDirectory{}, now)
	s.RefreshBookedSlots(context.Background())
	s.ToggleSlot("10:00")

	s.ApplyBookedSlots("2026-08-31", []string{"11:00"})
	first := s.Snapshot().Form.Slots
	s.ApplyBookedSlots("2026-08-31", []string{"11:00"})
	second := s.Snapshot().Form.Slots
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("reconciliation must be idempotent: %v then %v", first, second)
	}
}

func TestTick_EvictsSlotThatBecamePast(t *testing.T) {
	now := mustTime(t, 2026, 8, 31, 9, 30)
	s := newTestSession(t, &fakeDirectory{}, now)
	s.RefreshBookedSlots(context.Background())

	s.ToggleSlot("10:00")
	s.ToggleSlot("11:00")

	s.Tick(mustTime(t, 2026, 8, 31, 10, 1))
	got := s.Snapshot().Form.Slots
	if !reflect.DeepEqual(got, []string{"11:00"}) {
		t.Fatalf("expected 10:00 evicted once past, got %v", got)
	}

	// a tick that invalidates nothing must not touch the set
	s.Tick(mustTime(t, 2026, 8, 31, 10, 2))
	got = s.Snapshot().Form.Slots
	if !reflect.DeepEqual(got, []string{"11:00"}) {
		t.Fatalf("tick without invalidation must not change selections, got %v", got)
	}
}

func TestValidate_FieldRules(t *testing.T) {
	now := mustTime(t, 2026, 8, 31, 9, 0)
	s := newTestSession(t, &fakeDirectory{}, now)
	s.RefreshBookedSlots(context.Background())

	errs := s.Validate()
	for _, field := range []string{"name", "phone", "service", "timeSlots"} {
		if errs[field] == "" {
			t.Fatalf("expected error for %s on an empty form, got %v", field, errs)
		}
	}

	fillValidForm(s)
	s.ToggleSlot("10:00")
	if errs := s.Validate(); len(errs) != 0 {
		t.Fatalf("expected valid form, got %v", errs)
	}

	s.SetService("Underwater Basket Weaving")
	if errs := s.Validate(); errs["service"] == "" {
		t.Fatalf("expected service error for an unconfigured service")
	}
}

func TestSubmit_ValidationFailureSkipsNetwork(t *testing.T) {
	now := mustTime(t, 2026, 8, 31, 9, 0)
	dir := &fakeDirectory{}
	s := newTestSession(t, dir, now)

	if err := s.Submit(context.Background()); err == nil {
		t.Fatalf("expected validation failure")
	}
	snap := s.Snapshot()
	if snap.Status != StatusFailed || len(snap.Errors) == 0 {
		t.Fatalf("expected failed status with field errors, got %+v", snap)
	}
	if len(dir.created) != 0 {
		t.Fatalf("validation failure must not reach the network")
	}
}

func TestSubmit_AllSucceedResetsAndRefreshes(t *testing.T) {
	now := mustTime(t, 2026, 8, 31, 9, 0)
	dir := &fakeDirectory{booked: map[string][]string{}}
	s := newTestSession(t, dir, now)
	s.RefreshBookedSlots(context.Background())

	fillValidForm(s)
	s.ToggleSlot("10:00")
	s.ToggleSlot("10:30")

	if err := s.Submit(context.Background()); err != nil {
		t.Fatalf("expected success, got %v", err)
	}

	if len(dir.created) != 2 {
		t.Fatalf("expected one request per slot, got %d", len(dir.created))
	}
	for _, nb := range dir.created {
		if nb.Name != "Jo Smith" || nb.Phone != "555-012-3456" || nb.Date != "2026-08-31" {
			t.Fatalf("unexpected payload: %+v", nb)
		}
		if nb.Status != directory.StatusConfirmed {
			t.Fatalf("expected confirmed status, got %q", nb.Status)
		}
	}

	snap := s.Snapshot()
	if snap.Status != StatusSucceeded {
		t.Fatalf("expected succeeded, got %s", snap.Status)
	}
	if snap.Notice == nil || !snap.Notice.Success || snap.Notice.Text != "Successfully booked 2 time slots!" {
		t.Fatalf("unexpected notice: %+v", snap.Notice)
	}
	if snap.Form.Name != "" || snap.Form.Phone != "" || snap.Form.Service != "" || len(snap.Form.Slots) != 0 {
		t.Fatalf("form must reset after success, got %+v", snap.Form)
	}
	if slotgrid.FormatDate(snap.Form.Date) != "2026-08-31" {
		t.Fatalf("chosen date must survive the reset")
	}
	// the refetched booked set reflects the just-created bookings
	if !containsString(snap.Booked, "10:00") || !containsString(snap.Booked, "10:30") {
		t.Fatalf("expected refreshed booked set to include new bookings, got %v", snap.Booked)
	}
}

func TestSubmit_PartialFailure(t *testing.T) {
	now := mustTime(t, 2026, 8, 31, 9, 0)
	dir := &fakeDirectory{
		booked:    map[string][]string{},
		createErr: map[string]error{"10:30": &directory.APIError{StatusCode: 409, Message: "slot already booked"}},
	}
	s := newTestSession(t, dir, now)
	s.RefreshBookedSlots(context.Background())

	fillValidForm(s)
	s.ToggleSlot("10:00")
	s.ToggleSlot("10:30")
	s.ToggleSlot("11:00")

	if err := s.Submit(context.Background()); err == nil {
		t.Fatalf("expected failure")
	}

	snap := s.Snapshot()
	if snap.Status != StatusFailed {
		t.Fatalf("expected failed status, got %s", snap.Status)
	}
	if snap.Notice == nil || snap.Notice.Success || snap.Notice.Text != "slot already booked" {
		t.Fatalf("expected the server's message, got %+v", snap.Notice)
	}
	if snap.Form.Name != "Jo Smith" {
		t.Fatalf("failure must not clear entered data")
	}
	// the two successes are committed server-side; the post-failure refresh
	// reconciles them out, leaving only the failed slot selected for retry
	if !reflect.DeepEqual(snap.Form.Slots, []string{"10:30"}) {
		t.Fatalf("expected only the failed slot selected after reconcile, got %v", snap.Form.Slots)
	}
}

func TestSubmit_GenericMessageWithoutServerMessage(t *testing.T) {
	now := mustTime(t, 2026, 8, 31, 9, 0)
	dir := &fakeDirectory{
		booked:    map[string][]string{},
		createErr: map[string]error{"10:00": errors.New("connection refused")},
	}
	s := newTestSession(t, dir, now)
	s.RefreshBookedSlots(context.Background())

	fillValidForm(s)
	s.ToggleSlot("10:00")

	_ = s.Submit(context.Background())
	snap := s.Snapshot()
	if snap.Notice == nil || snap.Notice.Text != "Failed to create booking. Please try again." {
		t.Fatalf("expected generic fallback message, got %+v", snap.Notice)
	}
}
