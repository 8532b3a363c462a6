package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/example/salon-booking/internal/session"
	"github.com/example/salon-booking/internal/slotgrid"
)

func newWatchCmd() *cobra.Command {
	var (
		date     string
		interval int
	)

	c := &cobra.Command{
		Use:   "watch",
		Short: "Watch a date's availability, refreshing on the clock tick",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, dir, err := setup()
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			s := session.New(dir, slotgrid.RealClock{}, session.Config{
				StartHour:       cfg.StartHour,
				EndHour:         cfg.EndHour,
				IntervalMinutes: cfg.IntervalMinutes,
				Services:        cfg.Services,
			}, log)
			if date != "" {
				d, err := slotgrid.ParseDate(date, time.Local)
				if err != nil {
					return err
				}
				s.SetDate(d)
			}

			tick := cfg.TickInterval()
			if interval > 0 {
				tick = time.Duration(interval) * time.Second
			}
			r := &session.Runner{
				Session:  s,
				Interval: tick,
				Log:      log,
				OnChange: func(snap session.Snapshot) {
					fmt.Println()
					renderGrid(os.Stdout, snap)
				},
			}
			if err := r.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		},
	}

	c.Flags().StringVar(&date, "date", "", "booking date YYYY-MM-DD (default today)")
	c.Flags().IntVar(&interval, "interval", 0, "refresh interval seconds (default from config)")
	return c
}
