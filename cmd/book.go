package cmd

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/example/salon-booking/internal/session"
	"github.com/example/salon-booking/internal/slotgrid"
)

func newBookCmd() *cobra.Command {
	var (
		name    string
		phone   string
		service string
		date    string
		slots   string
	)

	c := &cobra.Command{
		Use:   "book",
		Short: "Book one or more appointment slots",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, dir, err := setup()
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			ctx := context.Background()
			s := session.New(dir, slotgrid.RealClock{}, session.Config{
				StartHour:       cfg.StartHour,
				EndHour:         cfg.EndHour,
				IntervalMinutes: cfg.IntervalMinutes,
				Services:        cfg.Services,
			}, log)

			s.SetName(name)
			s.SetPhone(phone)
			s.SetService(service)
			if date != "" {
				d, err := slotgrid.ParseDate(date, time.Local)
				if err != nil {
					return err
				}
				s.SetDate(d)
			}
			s.RefreshBookedSlots(ctx)

			wanted := splitCSV(slots)
			for _, slot := range wanted {
				before := len(s.Snapshot().Form.Slots)
				s.ToggleSlot(slot)
				if len(s.Snapshot().Form.Slots) == before {
					return fmt.Errorf("slot %s is not available (%s)", slot, s.Classify(slot))
				}
			}

			if err := s.Submit(ctx); err != nil {
				snap := s.Snapshot()
				if len(snap.Errors) > 0 {
					fields := make([]string, 0, len(snap.Errors))
					for f := range snap.Errors {
						fields = append(fields, f)
					}
					sort.Strings(fields)
					for _, f := range fields {
						fmt.Fprintf(os.Stderr, "%s: %s\n", f, snap.Errors[f])
					}
				}
				if snap.Notice != nil {
					fmt.Fprintln(os.Stderr, snap.Notice.Text)
				}
				return err
			}

			fmt.Println(s.Snapshot().Notice.Text)
			return nil
		},
	}

	c.Flags().StringVar(&name, "name", "", "customer full name")
	c.Flags().StringVar(&phone, "phone", "", "10-digit phone number")
	c.Flags().StringVar(&service, "service", "", "service name")
	c.Flags().StringVar(&date, "date", "", "booking date YYYY-MM-DD (default today)")
	c.Flags().StringVar(&slots, "slots", "", "comma-separated time slots (HH:MM)")

	_ = c.MarkFlagRequired("name")
	_ = c.MarkFlagRequired("phone")
	_ = c.MarkFlagRequired("service")
	_ = c.MarkFlagRequired("slots")
	return c
}

func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	var out []string
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}
