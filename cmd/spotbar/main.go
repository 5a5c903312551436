package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/genricoloni/spotbar/internal/app"
	"github.com/genricoloni/spotbar/internal/config"
	"github.com/genricoloni/spotbar/internal/domain"
	"github.com/genricoloni/spotbar/internal/format"
	"github.com/genricoloni/spotbar/internal/player"
	"github.com/spf13/cobra"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	flagConfig  string
	flagPlayer  string
	flagVerbose bool
)

var rootCmd = &cobra.Command{
	Use:   "spotbar",
	Short: "Print the currently playing Spotify track as a pango status block",
	Long: `spotbar queries the Spotify MPRIS session on the D-Bus session bus and
prints one pango-markup line for a status bar block (i3bar, i3blocks).
It runs once and exits; the bar host re-invokes it periodically.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, _ []string) error {
		logger, err := newLogger()
		if err != nil {
			fmt.Fprintln(os.Stderr, "failed to build logger:", err)
			return nil
		}
		defer logger.Sync() //nolint:errcheck // stderr sync is best-effort

		// A status block erroring out is worse than a status block
		// going silent, so every failure degrades to empty output
		// and a clean exit.
		if err := run(cmd.Context(), logger); err != nil {
			logger.Warn("Invocation degraded to empty output", zap.Error(err))
		}
		return nil
	},
}

func init() {
	rootCmd.Flags().StringVar(&flagConfig, "config", "",
		"config file path (default $SPOTBAR_CONFIG or ~/"+config.ConfigFileName+")")
	rootCmd.Flags().StringVar(&flagPlayer, "player", player.SpotifyBusName,
		"MPRIS bus name to query")
	rootCmd.Flags().BoolVarP(&flagVerbose, "verbose", "v", false,
		"log debug output to stderr")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		// Only flag misuse lands here; run errors never propagate
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// AppOptions assembles the dependency graph for one invocation.
// Kept as a named option set so tests can validate the graph.
var AppOptions = fx.Options(
	fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
		return &fxevent.ZapLogger{Logger: log}
	}),
	fx.Provide(
		newLogger,
		newConfig,
		newBusClient,
		newQuerier,
		newFormatter,
		newOutput,
		app.NewApp,
	),
)

// run executes one query-format-print pass through the fx graph
func run(ctx context.Context, logger *zap.Logger) error {
	fxApp := fx.New(
		AppOptions,
		fx.Invoke(registerHooks),
	)
	if err := fxApp.Err(); err != nil {
		return err
	}
	if err := fxApp.Start(ctx); err != nil {
		return err
	}
	return fxApp.Stop(context.Background())
}

// newLogger creates a stderr zap logger; stdout stays reserved for the
// status line itself
func newLogger() (*zap.Logger, error) {
	if flagVerbose {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	return cfg.Build()
}

// newConfig resolves the status-line configuration
func newConfig(logger *zap.Logger) config.Status {
	return config.Load(flagConfig, logger)
}

// newBusClient connects to the session bus and ties the connection to
// the fx lifecycle
func newBusClient(lc fx.Lifecycle, logger *zap.Logger) (player.BusClient, error) {
	conn, err := player.NewSessionBusClient()
	if err != nil {
		return nil, fmt.Errorf("session bus connection failed: %w", err)
	}
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			if err := conn.Close(); err != nil {
				logger.Warn("Failed to close D-Bus connection", zap.Error(err))
			}
			return nil
		},
	})
	return conn, nil
}

// newQuerier creates the MPRIS querier for the selected player
func newQuerier(conn player.BusClient, logger *zap.Logger) domain.Querier {
	return player.NewMprisQuerier(conn, flagPlayer, logger)
}

// newFormatter creates the status formatter
func newFormatter(cfg config.Status, logger *zap.Logger) domain.Formatter {
	return format.New(cfg, logger)
}

// newOutput exposes stdout as the injected sink
func newOutput() io.Writer {
	return os.Stdout
}

// registerHooks schedules the single pipeline pass on startup
func registerHooks(lc fx.Lifecycle, a *app.App) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return a.Run(ctx)
		},
	})
}
