package cmd

import (
	"fmt"
	"io"

	"github.com/example/salon-booking/internal/session"
	"github.com/example/salon-booking/internal/slotgrid"
)

// renderGrid prints the slot grid for a snapshot: one line per slot with its
// classification and, for today's near slots, a closing countdown. Matches
// the front-of-house legend: available / selected / booked / closed.
func renderGrid(w io.Writer, snap session.Snapshot) {
	fmt.Fprintf(w, "%s (%s)\n", slotgrid.DateDisplayText(snap.Form.Date, snap.Now), slotgrid.FormatDate(snap.Form.Date))
	if snap.LoadingSlots {
		fmt.Fprintln(w, "  loading available time slots...")
		return
	}
	for _, slot := range snap.Grid {
		class := slotgrid.Classify(slot, snap.Form.Date, snap.Booked, snap.Form.Slots, snap.Now)
		label := class.String()
		if class == slotgrid.Past {
			label = "closed"
		}
		line := fmt.Sprintf("  %-8s %s", slotgrid.Format12Hour(slot), label)
		if class == slotgrid.Available || class == slotgrid.Selected {
			if mins, ok := slotgrid.MinutesUntilClose(slot, snap.Form.Date, snap.Now); ok && mins >= 0 && mins < 30 {
				if mins < 1 {
					line += "  (closing now)"
				} else {
					line += fmt.Sprintf("  (%dm left)", mins)
				}
			}
		}
		fmt.Fprintln(w, line)
	}
	if n := len(snap.Form.Slots); n > 0 {
		fmt.Fprintf(w, "%d slot(s) selected\n", n)
	}
}
