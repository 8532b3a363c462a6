package session

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Runner drives a session on a fixed cadence: advance the clock, refresh the
// booked set, hand the new snapshot to the renderer. Session methods are not
// goroutine-safe, so the runner is the only caller while it runs.
type Runner struct {
	Session  *Session
	Interval time.Duration
	OnChange func(Snapshot)
	Log      *zap.Logger
}

func (r *Runner) Run(ctx context.Context) error {
	if r.Interval <= 0 {
		r.Interval = time.Minute
	}
	if r.Log == nil {
		r.Log = zap.NewNop()
	}

	// kick immediately
	r.Session.RefreshBookedSlots(ctx)
	r.notify()

	t := time.NewTicker(r.Interval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-t.C:
			r.Session.Tick(now)
			r.Session.RefreshBookedSlots(ctx)
			r.notify()
		}
	}
}

func (r *Runner) notify() {
	if r.OnChange != nil {
		r.OnChange(r.Session.Snapshot())
	}
}
