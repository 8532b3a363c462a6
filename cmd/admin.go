package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/salon-booking/internal/directory"
)

// Admin commands are thin wrappers over the directory's admin contract; the
// server decides who is actually allowed to call them.
func newAdminCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "admin",
		Short: "Administer bookings, reviews and services",
	}
	c.AddCommand(newAdminBookingsCmd())
	c.AddCommand(newAdminReviewsCmd())
	c.AddCommand(newAdminServicesCmd())
	return c
}

func newAdminBookingsCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "bookings",
		Short: "Manage all bookings",
	}

	var (
		page   int
		limit  int
		date   string
		status string
	)
	list := &cobra.Command{
		Use:   "list",
		Short: "List bookings with filters",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, log, dir, err := setup()
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			pageRes, err := dir.AllBookings(context.Background(), directory.ListBookingsParams{
				Page: page, Limit: limit, Date: date, Status: status,
			})
			if err != nil {
				return err
			}
			for _, b := range pageRes.Bookings {
				fmt.Printf("id=%s date=%s slot=%s name=%q phone=%s service=%q status=%s\n",
					b.ID, b.Date, b.TimeSlot, b.Name, b.Phone, b.Service, b.Status)
			}
			fmt.Printf("page %d/%d, %d total\n", pageRes.Page, pageRes.Pages, pageRes.Total)
			return nil
		},
	}
	list.Flags().IntVar(&page, "page", 0, "page number")
	list.Flags().IntVar(&limit, "limit", 0, "page size")
	list.Flags().StringVar(&date, "date", "", "filter by date YYYY-MM-DD")
	list.Flags().StringVar(&status, "status", "", "filter by status")
	c.AddCommand(list)

	var (
		id        string
		newStatus string
	)
	setStatus := &cobra.Command{
		Use:   "status",
		Short: "Update a booking's status",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, log, dir, err := setup()
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			b, err := dir.UpdateBookingStatus(context.Background(), id, newStatus)
			if err != nil {
				return err
			}
			fmt.Printf("booking %s is now %s\n", b.ID, b.Status)
			return nil
		},
	}
	setStatus.Flags().StringVar(&id, "id", "", "booking id")
	setStatus.Flags().StringVar(&newStatus, "status", "", "pending|confirmed|completed|cancelled")
	_ = setStatus.MarkFlagRequired("id")
	_ = setStatus.MarkFlagRequired("status")
	c.AddCommand(setStatus)

	var delID string
	del := &cobra.Command{
		Use:   "delete",
		Short: "Delete a booking",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, log, dir, err := setup()
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			if err := dir.DeleteBooking(context.Background(), delID); err != nil {
				return err
			}
			fmt.Printf("deleted booking %s\n", delID)
			return nil
		},
	}
	del.Flags().StringVar(&delID, "id", "", "booking id")
	_ = del.MarkFlagRequired("id")
	c.AddCommand(del)

	return c
}

func newAdminReviewsCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "reviews",
		Short: "Moderate reviews",
	}

	c.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List all reviews, approved or not",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, log, dir, err := setup()
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			rs, err := dir.AllReviews(context.Background())
			if err != nil {
				return err
			}
			for _, r := range rs {
				state := "pending"
				if r.Approved {
					state = "approved"
				}
				fmt.Printf("id=%s %d/5 %s [%s]: %s\n", r.ID, r.Rating, r.Name, state, r.Comment)
			}
			return nil
		},
	})

	var approveID string
	approve := &cobra.Command{
		Use:   "approve",
		Short: "Approve a review",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, log, dir, err := setup()
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			if err := dir.ApproveReview(context.Background(), approveID); err != nil {
				return err
			}
			fmt.Printf("approved review %s\n", approveID)
			return nil
		},
	}
	approve.Flags().StringVar(&approveID, "id", "", "review id")
	_ = approve.MarkFlagRequired("id")
	c.AddCommand(approve)

	var delID string
	del := &cobra.Command{
		Use:   "delete",
		Short: "Delete a review",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, log, dir, err := setup()
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			if err := dir.DeleteReview(context.Background(), delID); err != nil {
				return err
			}
			fmt.Printf("deleted review %s\n", delID)
			return nil
		},
	}
	del.Flags().StringVar(&delID, "id", "", "review id")
	_ = del.MarkFlagRequired("id")
	c.AddCommand(del)

	return c
}

func newAdminServicesCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "services",
		Short: "Manage the service catalog",
	}

	var (
		name        string
		description string
		price       float64
		duration    int
	)
	create := &cobra.Command{
		Use:   "create",
		Short: "Add a service",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, log, dir, err := setup()
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			s, err := dir.CreateService(context.Background(), directory.Service{
				Name: name, Description: description, Price: price, Duration: duration,
			})
			if err != nil {
				return err
			}
			fmt.Printf("created service %s (%q)\n", s.ID, s.Name)
			return nil
		},
	}
	create.Flags().StringVar(&name, "name", "", "service name")
	create.Flags().StringVar(&description, "description", "", "description")
	create.Flags().Float64Var(&price, "price", 0, "price")
	create.Flags().IntVar(&duration, "duration", 0, "duration minutes")
	_ = create.MarkFlagRequired("name")
	c.AddCommand(create)

	var (
		updID       string
		updName     string
		updDesc     string
		updPrice    float64
		updDuration int
	)
	update := &cobra.Command{
		Use:   "update",
		Short: "Update a service",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, log, dir, err := setup()
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			s, err := dir.UpdateService(context.Background(), updID, directory.Service{
				Name: updName, Description: updDesc, Price: updPrice, Duration: updDuration,
			})
			if err != nil {
				return err
			}
			fmt.Printf("updated service %s (%q)\n", s.ID, s.Name)
			return nil
		},
	}
	update.Flags().StringVar(&updID, "id", "", "service id")
	update.Flags().StringVar(&updName, "name", "", "service name")
	update.Flags().StringVar(&updDesc, "description", "", "description")
	update.Flags().Float64Var(&updPrice, "price", 0, "price")
	update.Flags().IntVar(&updDuration, "duration", 0, "duration minutes")
	_ = update.MarkFlagRequired("id")
	_ = update.MarkFlagRequired("name")
	c.AddCommand(update)

	var delID string
	del := &cobra.Command{
		Use:   "delete",
		Short: "Delete a service",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, log, dir, err := setup()
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			if err := dir.DeleteService(context.Background(), delID); err != nil {
				return err
			}
			fmt.Printf("deleted service %s\n", delID)
			return nil
		},
	}
	del.Flags().StringVar(&delID, "id", "", "service id")
	_ = del.MarkFlagRequired("id")
	c.AddCommand(del)

	return c
}
