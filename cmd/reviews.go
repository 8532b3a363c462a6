package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/salon-booking/internal/directory"
)

func newReviewsCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "reviews",
		Short: "Read and leave reviews",
	}
	c.AddCommand(newReviewsListCmd())
	c.AddCommand(newReviewsAddCmd())
	return c
}

func newReviewsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List approved reviews",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, log, dir, err := setup()
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			rs, err := dir.Reviews(context.Background())
			if err != nil {
				return err
			}
			for _, r := range rs {
				fmt.Printf("%d/5 %s: %s\n", r.Rating, r.Name, r.Comment)
			}
			return nil
		},
	}
}

func newReviewsAddCmd() *cobra.Command {
	var (
		name    string
		rating  int
		comment string
	)
	c := &cobra.Command{
		Use:   "add",
		Short: "Submit a review (shown once approved)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if rating < 1 || rating > 5 {
				return fmt.Errorf("--rating must be 1..5")
			}
			_, log, dir, err := setup()
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			r, err := dir.CreateReview(context.Background(), directory.NewReview{
				Name: name, Rating: rating, Comment: comment,
			})
			if err != nil {
				return err
			}
			fmt.Printf("submitted review %s (pending approval)\n", r.ID)
			return nil
		},
	}
	c.Flags().StringVar(&name, "name", "", "your name")
	c.Flags().IntVar(&rating, "rating", 5, "rating 1..5")
	c.Flags().StringVar(&comment, "comment", "", "review text")
	_ = c.MarkFlagRequired("name")
	_ = c.MarkFlagRequired("comment")
	return c
}
