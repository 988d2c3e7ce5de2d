package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/seedwork"
	"github.com/aretw0/seedwork/internal/config"
)

// app carries the state shared by every command of one invocation.
type app struct {
	verbose    bool
	fixtures   string
	configPath string

	cfg    *config.Config
	logger *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:   "seedwork",
		Short: "Search and edit entity collections seeded from fixture files",
		Long: `seedwork loads categories from JSON, YAML or CSV fixtures into an
in-memory repository and runs paginated, sorted and filtered searches over them.
Writes only live for the duration of the command.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	cmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().StringVarP(&a.fixtures, "fixtures", "f", "", "Glob of fixture files to seed from (overrides config)")
	cmd.PersistentFlags().StringVar(&a.configPath, "config", "", "Path to seedwork.yaml (default: search upwards)")

	cmd.AddCommand(
		newSearchCmd(a),
		newGetCmd(a),
		newCreateCmd(a),
		newUpdateCmd(a),
		newDeleteCmd(a),
		newInspectCmd(a),
		newVersionCmd(),
	)
	return cmd
}

func (a *app) setup(cmd *cobra.Command) error {
	path := a.configPath
	if path == "" && os.Getenv("SEEDWORK_CONFIG") == "" {
		if found, err := seedwork.FindConfig("."); err == nil {
			path = found
		}
	}

	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	if a.fixtures != "" {
		cfg.Fixtures.Pattern = a.fixtures
	}
	a.cfg = cfg

	level := cfg.Log.SlogLevel()
	if a.verbose {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler = slog.NewTextHandler(cmd.ErrOrStderr(), opts)
	if cfg.Log.Format == "json" {
		handler = slog.NewJSONHandler(cmd.ErrOrStderr(), opts)
	}
	a.logger = slog.New(handler)
	slog.SetDefault(a.logger)
	return nil
}

func (a *app) options() []seedwork.Option {
	return []seedwork.Option{
		seedwork.WithLogger(a.logger),
		seedwork.WithFixtures(a.cfg.Fixtures.Pattern),
		seedwork.WithStrict(a.cfg.Fixtures.Strict),
		seedwork.WithEventBuffer(a.cfg.Events.Buffer),
		seedwork.WithWatchDebounce(a.cfg.Events.Debounce),
		seedwork.WithWatcherErrorHandler(func(err error) {
			a.logger.Warn("fixture watcher error", "error", err)
		}),
	}
}

func (a *app) open(ctx context.Context) (*seedwork.CategoryRepository, error) {
	return seedwork.OpenCategories(ctx, a.options()...)
}
