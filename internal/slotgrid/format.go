package slotgrid

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// FormatDate serializes a date as YYYY-MM-DD using local calendar fields,
// never UTC-normalized timestamps: two instants on the same local day must
// serialize identically.
func FormatDate(t time.Time) string {
	return fmt.Sprintf("%04d-%02d-%02d", t.Year(), int(t.Month()), t.Day())
}

// ParseDate parses YYYY-MM-DD into a midnight time in loc.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	t, err := time.ParseInLocation("2006-01-02", s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD)", s)
	}
	return t, nil
}

// ParseSlot splits a canonical "HH:MM" slot into hour and minute.
func ParseSlot(slot string) (hour, minute int, err error) {
	parts := strings.Split(slot, ":")
	if len(parts) != 2 || len(parts[0]) != 2 || len(parts[1]) != 2 {
		return 0, 0, fmt.Errorf("invalid slot %q (want HH:MM)", slot)
	}
	hour, err = strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, fmt.Errorf("invalid slot %q (want HH:MM)", slot)
	}
	minute, err = strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("invalid slot %q (want HH:MM)", slot)
	}
	return hour, minute, nil
}

// Format12Hour renders a 24-hour slot as "H:MM AM/PM" for display.
func Format12Hour(slot string) string {
	hour, minute, err := ParseSlot(slot)
	if err != nil {
		return slot
	}
	ampm := "AM"
	if hour >= 12 {
		ampm = "PM"
	}
	h12 := hour % 12
	if h12 == 0 {
		h12 = 12
	}
	return fmt.Sprintf("%d:%02d %s", h12, minute, ampm)
}

// DateDisplayText renders a friendly label for date relative to now:
// "Today", "Tomorrow", or the full date.
func DateDisplayText(date, now time.Time) string {
	switch FormatDate(date) {
	case FormatDate(now):
		return "Today"
	case FormatDate(now.AddDate(0, 0, 1)):
		return "Tomorrow"
	}
	return date.Format("Monday, January 2, 2006")
}
