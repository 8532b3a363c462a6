package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/example/salon-booking/internal/config"
	"github.com/example/salon-booking/internal/directory"
	"github.com/example/salon-booking/internal/logging"
)

var (
	Version   = "dev"
	CommitSHA = "none"
	BuildDate = "unknown"
)

func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "salonbook",
		Short: "Salon booking client: browse availability, book appointment slots, manage the directory",
	}

	root.AddCommand(newVersionCmd())
	root.AddCommand(newSlotsCmd())
	root.AddCommand(newBookCmd())
	root.AddCommand(newWatchCmd())
	root.AddCommand(newBookingsCmd())
	root.AddCommand(newServicesCmd())
	root.AddCommand(newReviewsCmd())
	root.AddCommand(newAdminCmd())

	return root
}

func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// setup loads config and builds the logger and directory client every
// command shares.
func setup() (config.Config, *zap.Logger, *directory.Client, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, nil, nil, err
	}
	log, err := logging.New(cfg.LogLevel, cfg.Env)
	if err != nil {
		return config.Config{}, nil, nil, err
	}
	dir := directory.New(directory.Options{
		BaseURL:   cfg.APIBaseURL,
		AuthToken: cfg.AuthToken,
		Timeout:   cfg.HTTPTimeout(),
		Logger:    log,
	})
	return cfg, log, dir, nil
}
