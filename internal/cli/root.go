// Package cli implements the quartzcron command-line interface.
package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/shenjy24/quartzcron/internal/config"
)

// NewRootCmd creates the root quartzcron command.
func NewRootCmd() *cobra.Command {
	var configPath string
	var layout string
	var location string
	cfg := config.DefaultConfig()

	cmd := &cobra.Command{
		Use:   "quartzcron",
		Short: "Validate and evaluate Quartz-style cron expressions",
		Long: `quartzcron - validate and evaluate Quartz-style cron expressions

COMMANDS
  validate   Check whether an expression parses
  format     Print the canonical form of an expression
  next       Print the next fire times after an instant
  prev       Print the last fire time before an instant
  match      Check whether an instant satisfies an expression

EXPRESSIONS
  6 or 7 whitespace-separated fields:
    second minute hour day-of-month month day-of-week [year]
  e.g. "0 15 10 ? * MON-FRI" or "0 0 2 1 * ? *"`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := config.LoadConfig(configPath)
			if err != nil {
				return err
			}
			// Flags override the file.
			if layout != "" {
				loaded.Output.TimeLayout = layout
			}
			if location != "" {
				loaded.Search.Location = location
			}
			if err := loaded.Validate(); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}
			*cfg = *loaded
			setupLogging(cfg)
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to configuration file (TOML)")
	cmd.PersistentFlags().StringVar(&layout, "layout", "", "Time layout for parsing and printing instants")
	cmd.PersistentFlags().StringVar(&location, "location", "", "IANA time zone for searches (defaults to config)")

	cmd.AddCommand(
		newValidateCmd(),
		newFormatCmd(),
		newNextCmd(cfg),
		newPrevCmd(cfg),
		newMatchCmd(cfg),
	)

	return cmd
}

// setupLogging installs the default slog logger per the loaded config.
func setupLogging(cfg *config.Config) {
	var level slog.Level
	switch cfg.Logging.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if cfg.Logging.Format == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(handler))
}
