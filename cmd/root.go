package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mhoffer/parkcast/app"
	"github.com/mhoffer/parkcast/config"
	"github.com/mhoffer/parkcast/infra/logger"
)

var cfgPath string

var rootCmd = &cobra.Command{
	Use:   "parkcast",
	Short: "Parking prebooking demo service",
	RunE:  run,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "config.yaml", "configuration file")
}

// Execute runs the CLI.
func Execute() error { return rootCmd.Execute() }

func run(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	session, err := newSession()
	if err != nil {
		return err
	}
	defer func() {
		if err := session.Close(); err != nil {
			logger.New("main").Errorf("session close: %v", err)
		}
	}()

	for hour := 0; hour < 24; hour++ {
		session.SnapshotOccupancy(hour)
	}
	return session.ServeMetrics(ctx)
}

// newSession loads the configuration from the --config path and builds the
// session every subcommand works against.
func newSession() (*app.Session, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return app.New(cfg)
}
