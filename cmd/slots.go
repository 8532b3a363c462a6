package cmd

import (
	"context"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/example/salon-booking/internal/session"
	"github.com/example/salon-booking/internal/slotgrid"
)

func newSlotsCmd() *cobra.Command {
	var date string

	c := &cobra.Command{
		Use:   "slots",
		Short: "Show the slot grid and availability for a date",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, dir, err := setup()
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			clock := slotgrid.RealClock{}
			s := session.New(dir, clock, session.Config{
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
			s.RefreshBookedSlots(context.Background())

			renderGrid(os.Stdout, s.Snapshot())
			return nil
		},
	}

	c.Flags().StringVar(&date, "date", "", "booking date YYYY-MM-DD (default today)")
	return c
}
