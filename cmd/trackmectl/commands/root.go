package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/benvon/trackme/internal/bootstrap"
	"github.com/benvon/trackme/internal/config"
	"github.com/benvon/trackme/internal/logger"
	"github.com/benvon/trackme/internal/queue"
	"github.com/benvon/trackme/internal/store"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// StoreOpener builds the store a command works on. The returned func
// releases whatever the store holds open.
type StoreOpener func(ctx context.Context, logger *zap.Logger) (*store.Store, func(), error)

type app struct {
	open    StoreOpener
	output  string
	verbose bool
	now     func() time.Time
}

// NewRootCmd creates the trackmectl command tree
func NewRootCmd(open StoreOpener) *cobra.Command {
	a := &app{open: open, now: time.Now}

	rootCmd := &cobra.Command{
		Use:           "trackmectl",
		Short:         "Manage TrackMe tasks, goals and metrics",
		Long:          "Command line client for the TrackMe data store. Reads the same configuration as the API server.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			switch a.output {
			case outputTable, outputJSON, outputYAML:
				return nil
			default:
				return fmt.Errorf("unknown output format %q (want table, json or yaml)", a.output)
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&a.output, "output", "o", outputTable, "Output format: table, json or yaml")
	rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Log store activity to stderr")

	rootCmd.AddCommand(newTasksCmd(a))
	rootCmd.AddCommand(newGoalsCmd(a))
	rootCmd.AddCommand(newMetricsCmd(a))
	rootCmd.AddCommand(newReportCmd(a))
	rootCmd.AddCommand(newResetCmd(a))

	return rootCmd
}

func (a *app) logger() (*zap.Logger, error) {
	if !a.verbose {
		return zap.NewNop(), nil
	}
	return logger.NewDevelopmentLogger(true)
}

// withStore opens the store, runs fn and releases the store
func (a *app) withStore(cmd *cobra.Command, fn func(ctx context.Context, s *store.Store) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	log, err := a.logger()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	s, release, err := a.open(ctx, log)
	if err != nil {
		return err
	}
	defer release()
	return fn(ctx, s)
}

// OpenConfiguredStore opens the backend named by the environment. Change
// events are published when RABBITMQ_URL is set and the broker is reachable.
func OpenConfiguredStore(ctx context.Context, log *zap.Logger) (*store.Store, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("invalid config: %w", err)
	}

	kv, err := bootstrap.OpenStorage(ctx, cfg, log)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open storage: %w", err)
	}
	closers := []func() error{kv.Close}

	var notifier store.ChangeNotifier
	if cfg.RabbitMQURL != "" {
		q, err := queue.NewRabbitMQQueue(cfg.RabbitMQURL)
		if err != nil {
			log.Warn("change_events_unavailable", zap.Error(err))
		} else {
			notifier = queue.NewNotifier(q)
			closers = append(closers, q.Close)
		}
	}

	release := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			if err := closers[i](); err != nil {
				log.Warn("failed_to_close", zap.Error(err))
			}
		}
	}

	s, err := bootstrap.NewStore(ctx, cfg, kv, log, notifier)
	if err != nil {
		release()
		return nil, nil, err
	}
	return s, release, nil
}
