package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/mwantia/console"
	"github.com/mwantia/console/builtin"
	"github.com/mwantia/console/log"
	"github.com/spf13/cobra"
)

var (
	cfgFile  string
	logLevel string
	logFile  string
)

var rootCmd = &cobra.Command{
	Use:   "console",
	Short: "Interactive command console",
	Long: `console runs an interactive line-oriented command console with
declarative commands, history and tab completion.

Builtin commands:
  hello              - Prints Hello World
  status             - Shows system status
  about              - Prints project information
  echo -m <msg>      - Repeats message (use -n N, -u)
  calc -a N -b M     - Calculator (use -v for verbose)
  gpio -p N -m MODE  - Configure a simulated GPIO (use --pull, -l, -i, -s)`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runConsole,
}

// exitCode is set by subcommands that forward a command's return value.
var exitCode int

func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return exitCode
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (.toml, .yaml or .yml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Write logs to a rotated file")

	rootCmd.AddCommand(runCmd, execCmd, commandsCmd)
}

// loadConfig reads the config file given by --config or CONSOLE_CONFIG and
// applies the flag overrides.
func loadConfig() (console.Config, error) {
	cfg := console.DefaultConfig()

	path := cfgFile
	if path == "" {
		path = os.Getenv("CONSOLE_CONFIG")
	}
	if path != "" {
		var err error
		if cfg, err = console.LoadConfig(path); err != nil {
			return cfg, err
		}
	}

	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	if logFile != "" {
		cfg.Log.File = logFile
	}
	return cfg, nil
}

func newLogger(cfg console.Config) (*log.Logger, error) {
	level, err := log.Parse(cfg.Log.Level)
	if err != nil {
		return nil, err
	}

	opts := []log.LoggerOption{log.WithLevel(level)}
	if cfg.Log.File != "" {
		opts = append(opts, log.WithFile(cfg.Log.File), log.WithoutTerminal())
	}
	if cfg.Log.JSON {
		opts = append(opts, log.WithJSON())
	}
	if !cfg.Colors {
		opts = append(opts, log.WithoutColor())
	}
	return log.NewLogger("console", opts...), nil
}

// newSession builds a session with the builtin commands registered.
func newSession(ctx context.Context, cfg console.Config, opts ...console.SessionOption) (*console.Session, error) {
	logger, err := newLogger(cfg)
	if err != nil {
		return nil, err
	}

	opts = append([]console.SessionOption{
		console.WithConfig(cfg),
		console.WithLogger(logger),
	}, opts...)

	if cfg.StoreHistory {
		store, err := newHistoryStore(ctx, cfg.History)
		if err != nil {
			logger.Warn("Failed to create %s history store (%v), history will not be saved", cfg.History.Backend, err)
		} else {
			opts = append(opts, console.WithHistoryStore(store))
		}
	}

	session, err := console.NewSession(opts...)
	if err != nil {
		return nil, err
	}

	b := builtin.New(builtin.WithLogger(logger.Named("builtin")))
	if err := b.Register(session); err != nil {
		return nil, err
	}
	return session, nil
}
