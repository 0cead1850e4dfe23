package main

import (
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// ============================================================================
// TALLY CLI — Range, family and letter statistics from the command line
// ============================================================================

const version = "0.1.0"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
		logger.Error().Err(err).Msg("tally failed")
		os.Exit(1)
	}
}

// app carries per-invocation configuration and logging.
type app struct {
	v      *viper.Viper
	logger zerolog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New(), logger: zerolog.Nop()}

	cmd := &cobra.Command{
		Use:   "tally",
		Short: "Tally — small data statistics",
		Long: `Tally computes even numbers, squares of multiples, family age
statistics and letter frequencies.

Examples:
  tally evens 10 --format text
  tally squares 50 --format csv
  tally families --file people.csv --format pretty
  tally letters "Hello, World! 123"`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}

	flags := cmd.PersistentFlags()
	flags.String("config", "", "Path to a YAML config file (default ./.tally.yaml if present)")
	flags.String("format", "json", "Output format: json, pretty, text, csv")
	flags.String("out", "", "Write output to file instead of stdout")
	flags.String("log-level", "info", "Log level: debug, info, warn, error")

	cmd.AddCommand(
		a.evensCmd(),
		a.squaresCmd(),
		a.familiesCmd(),
		a.lettersCmd(),
	)
	return cmd
}

// setup binds flags, environment (TALLY_*) and the optional config file,
// then builds the logger. Precedence: flag > env > config > flag default.
func (a *app) setup(cmd *cobra.Command) error {
	if err := a.v.BindPFlags(cmd.Flags()); err != nil {
		return errors.Wrap(err, "failed to bind flags")
	}
	a.v.SetEnvPrefix("TALLY")
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()

	if path := a.v.GetString("config"); path != "" {
		if _, err := os.Stat(path); err != nil {
			return errors.Wrap(err, "config file")
		}
		a.v.SetConfigFile(path)
	} else {
		a.v.SetConfigName(".tally")
		a.v.SetConfigType("yaml")
		a.v.AddConfigPath(".")
	}
	if err := a.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return errors.Wrap(err, "failed to read config")
		}
	}

	level, err := zerolog.ParseLevel(a.v.GetString("log-level"))
	if err != nil {
		return errors.Wrapf(err, "invalid log level %q", a.v.GetString("log-level"))
	}
	a.logger = zerolog.New(zerolog.ConsoleWriter{Out: cmd.ErrOrStderr(), NoColor: true}).
		Level(level).
		With().Timestamp().Str("cmd", cmd.Name()).
		Logger()

	if used := a.v.ConfigFileUsed(); used != "" {
		a.logger.Debug().Str("file", used).Msg("loaded config")
	}
	return nil
}
