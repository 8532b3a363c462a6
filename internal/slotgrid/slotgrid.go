// Package slotgrid computes the daily appointment slot grid and classifies
// each slot against the booked set and a caller-provided clock. Everything in
// this package is a pure function of its inputs; "now" is always passed in.
package slotgrid

import (
	"fmt"
	"time"
)

// Operating window defaults. The grid covers [start, end) hours stepped by
// the interval; the end hour itself is never a slot.
const (
	DefaultStartHour       = 9
	DefaultEndHour         = 18
	DefaultIntervalMinutes = 30
)

// Clock abstracts wall-clock access so classification is deterministic in
// tests.
type Clock interface {
	Now() time.Time
}

type RealClock struct{}

func (RealClock) Now() time.Time { return time.Now() }

// Classification of a single slot. Precedence when several apply is fixed:
// booked beats past beats selected beats available.
type Classification int

const (
	Available Classification = iota
	Selected
	Booked
	Past
)

func (c Classification) String() string {
	switch c {
	case Selected:
		return "selected"
	case Booked:
		return "booked"
	case Past:
		return "past"
	default:
		return "available"
	}
}

// Generate returns every "HH:MM" boundary with startHour <= hour < endHour,
// stepping by intervalMinutes within each hour, in ascending order. Returns
// nil for a window or interval that cannot produce a grid.
func Generate(startHour, endHour, intervalMinutes int) []string {
	if startHour < 0 || endHour > 24 || endHour <= startHour {
		return nil
	}
	if intervalMinutes <= 0 || intervalMinutes > 60 || 60%intervalMinutes != 0 {
		return nil
	}
	slots := make([]string, 0, (endHour-startHour)*60/intervalMinutes)
	for hour := startHour; hour < endHour; hour++ {
		for minute := 0; minute < 60; minute += intervalMinutes {
			slots = append(slots, fmt.Sprintf("%02d:%02d", hour, minute))
		}
	}
	return slots
}

// Instant resolves a slot to its absolute start time on the given date, in
// the date's location.
func Instant(slot string, date time.Time) (time.Time, error) {
	hour, minute, err := ParseSlot(slot)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(date.Year(), date.Month(), date.Day(), hour, minute, 0, 0, date.Location()), nil
}

// IsPast reports whether the slot's start on date is strictly before now.
// Malformed slots are never past.
func IsPast(slot string, date, now time.Time) bool {
	at, err := Instant(slot, date)
	if err != nil {
		return false
	}
	return at.Before(now)
}

// Classify resolves a slot's state for display and toggle gating. booked and
// selected are plain slot lists, as served by the directory and held by the
// session.
func Classify(slot string, date time.Time, booked, selected []string, now time.Time) Classification {
	if containsSlot(booked, slot) {
		return Booked
	}
	if IsPast(slot, date, now) {
		return Past
	}
	if containsSlot(selected, slot) {
		return Selected
	}
	return Available
}

// MinutesUntilClose returns the whole minutes from now until the slot's
// start on date. ok is false unless date and now fall on the same local
// calendar day; callers only show countdowns for today. The value may be
// negative when the slot already started.
func MinutesUntilClose(slot string, date, now time.Time) (int, bool) {
	if FormatDate(date) != FormatDate(now) {
		return 0, false
	}
	at, err := Instant(slot, date)
	if err != nil {
		return 0, false
	}
	mins := int(at.Sub(now) / time.Minute)
	if at.Sub(now) < 0 && at.Sub(now)%time.Minute != 0 {
		mins-- // floor, not truncate, for negative remainders
	}
	return mins, true
}

func containsSlot(slots []string, slot string) bool {
	for _, s := range slots {
		if s == slot {
			return true
		}
	}
	return false
}
