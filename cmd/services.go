package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func newServicesCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "services",
		Short: "Browse the service catalog",
	}
	c.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List services",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, log, dir, err := setup()
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			svcs, err := dir.Services(context.Background())
			if err != nil {
				return err
			}
			for _, s := range svcs {
				fmt.Printf("id=%s name=%q price=%.2f duration=%dm\n", s.ID, s.Name, s.Price, s.Duration)
			}
			return nil
		},
	})
	return c
}
