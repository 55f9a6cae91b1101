package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/bagdasarian/octofit-tracker/internal/apiclient"
	"github.com/bagdasarian/octofit-tracker/internal/config"
	"github.com/bagdasarian/octofit-tracker/internal/logging"
)

// app carries what every subcommand needs once the root pre-run has loaded
// configuration.
type app struct {
	cfg     *config.Config
	logger  *zap.Logger
	apiURL  string
	verbose bool
}

func (a *app) client() *apiclient.Client {
	base := a.apiURL
	if base == "" {
		base = a.cfg.APIBaseURL()
	}
	return apiclient.New(base,
		apiclient.WithTimeout(a.cfg.Client.Timeout),
		apiclient.WithLogger(a.logger),
	)
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "octofit",
		Short:         "OctoFit Tracker command line",
		Long:          "Seed the tracker database, print its views in the terminal and edit users.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if a.verbose {
				cfg.Log.Level = "debug"
			}
			logger, err := logging.New(cfg.Log)
			if err != nil {
				return err
			}
			a.cfg, a.logger = cfg, logger
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	root.PersistentFlags().StringVar(&a.apiURL, "api-url", "", "API root, overriding OCTOFIT_API_URL and CODESPACE_NAME")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Debug logging")

	root.AddCommand(newSeedCmd(a), newViewCmd(a), newUsersCmd(a))
	return root
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
