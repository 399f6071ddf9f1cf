package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"backoffice/internal/config"
	"backoffice/internal/console"
	"backoffice/internal/database"
	"backoffice/internal/logging"
	"backoffice/internal/monitoring"
	"backoffice/internal/seed"
	"backoffice/internal/status"
)

// rootFlags are shared by every subcommand
type rootFlags struct {
	configFile string
	verbose    bool
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}
	root := &cobra.Command{
		Use:   "backoffice",
		Short: "Restaurant back-office console",
		Long: `backoffice manages orders, reservations and loyal customers
across a restaurant's outlets.

Run "backoffice serve" for the HTTP API or "backoffice console" for the
terminal console.`,
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&flags.configFile, "config", config.DefaultPath, "Path to configuration file")
	root.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "Enable verbose logging")

	root.AddCommand(
		newServeCmd(flags),
		newConsoleCmd(flags),
		newExportCmd(flags),
		newCustomersCmd(flags),
	)
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// app holds everything a subcommand needs
type app struct {
	cfg     *config.Config
	log     *zap.Logger
	store   database.Store
	monitor *monitoring.Monitor
	svc     *console.Service
}

// bootstrap loads config, opens the store, seeds it and builds the
// service. quiet discards logs for commands that own the terminal.
func bootstrap(flags *rootFlags, quiet bool) (*app, error) {
	cfg, err := config.Load(flags.configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := zap.NewNop()
	if !quiet {
		level := cfg.LogLevel
		if flags.verbose {
			level = "debug"
		}
		logger, err = logging.New(level, flags.verbose)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize logger: %w", err)
		}
	}

	store, err := database.Open(cfg.Database.Driver, cfg.Database.DSN, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	monitor := monitoring.NewMonitor()
	svc, err := console.New(store, console.Options{
		Location: cfg.Location(),
		TaxRate:  &cfg.Console.TaxRate,
		Workflow: status.Workflow(cfg.Orders.Workflow),
		Logger:   logger,
		Monitor:  monitor,
	})
	if err != nil {
		store.Close()
		return nil, err
	}

	if cfg.Seed.Enabled {
		opts := seed.Options{
			RandomSeed:      cfg.Seed.RandomSeed,
			OrdersPerOutlet: cfg.Seed.OrdersPerOutlet,
			Now:             svc.Now(),
		}
		if err := seed.Load(store, opts, logger); err != nil {
			store.Close()
			return nil, err
		}
	}

	return &app{cfg: cfg, log: logger, store: store, monitor: monitor, svc: svc}, nil
}

func (a *app) close() {
	if err := a.store.Close(); err != nil {
		a.log.Warn("failed to close store", zap.Error(err))
	}
	_ = a.log.Sync()
}

// output opens path for writing, "-" meaning w
func output(path string, w io.Writer) (io.WriteCloser, error) {
	if path == "-" {
		return nopCloser{w}, nil
	}
	return os.Create(path)
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }
