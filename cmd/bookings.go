package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func newBookingsCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "bookings",
		Short: "Manage your own bookings",
	}
	c.AddCommand(newBookingsListCmd())
	c.AddCommand(newBookingsCancelCmd())
	return c
}

func newBookingsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List your bookings",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, log, dir, err := setup()
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			bs, err := dir.MyBookings(context.Background())
			if err != nil {
				return err
			}
			for _, b := range bs {
				fmt.Printf("id=%s date=%s slot=%s service=%q status=%s\n",
					b.ID, b.Date, b.TimeSlot, b.Service, b.Status)
			}
			return nil
		},
	}
}

func newBookingsCancelCmd() *cobra.Command {
	var id string
	c := &cobra.Command{
		Use:   "cancel",
		Short: "Cancel one of your bookings",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, log, dir, err := setup()
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			if err := dir.CancelBooking(context.Background(), id); err != nil {
				return err
			}
			fmt.Printf("cancelled booking %s\n", id)
			return nil
		},
	}
	c.Flags().StringVar(&id, "id", "", "booking id")
	_ = c.MarkFlagRequired("id")
	return c
}
