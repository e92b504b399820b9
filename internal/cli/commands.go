package cli

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/shenjy24/quartzcron/internal/config"
	"github.com/shenjy24/quartzcron/lib/cron"
	"github.com/shenjy24/quartzcron/lib/cronutil"
)

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate EXPR",
		Short: "Check whether a cron expression parses",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cron.Validate(args[0]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "valid")
			return nil
		},
	}
}

func newFormatCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "format EXPR",
		Short: "Print the canonical form of a cron expression",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			canonical, err := cronutil.FormatExpression(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), canonical)
			return nil
		},
	}
}

func newNextCmd(cfg *config.Config) *cobra.Command {
	var fromStr string
	var count int

	cmd := &cobra.Command{
		Use:   "next EXPR",
		Short: "Print the next fire times after an instant",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, err := resolveInstant(cfg, fromStr)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("count") {
				count = cfg.Search.Count
			}
			if count < 1 {
				return fmt.Errorf("count must be greater than 0, got %d", count)
			}

			times, err := cronutil.NextTimes(args[0], from, count)
			if err != nil {
				return err
			}
			slog.Debug("computed fire times",
				"expression", args[0],
				"from", from,
				"count", len(times))

			for _, t := range times {
				fmt.Fprintln(cmd.OutOrStdout(), t.Format(cfg.Output.TimeLayout))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&fromStr, "from", "", "Reference instant (defaults to now)")
	cmd.Flags().IntVar(&count, "count", 0, "Number of fire times to print (defaults to config)")
	return cmd
}

func newPrevCmd(cfg *config.Config) *cobra.Command {
	var fromStr string

	cmd := &cobra.Command{
		Use:   "prev EXPR",
		Short: "Print the last fire time before an instant",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			before, err := resolveInstant(cfg, fromStr)
			if err != nil {
				return err
			}

			prev, err := cronutil.PrevTime(args[0], before)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), prev.Format(cfg.Output.TimeLayout))
			return nil
		},
	}

	cmd.Flags().StringVar(&fromStr, "from", "", "Reference instant (defaults to now)")
	return cmd
}

func newMatchCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "match EXPR TIME",
		Short: "Check whether an instant satisfies a cron expression",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := parseInstant(cfg, args[1])
			if err != nil {
				return err
			}
			ok, err := cronutil.IsSatisfiedBy(args[0], t)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ok)
			return nil
		},
	}
}

// resolveInstant parses an instant flag, defaulting to now in the
// configured location when empty.
func resolveInstant(cfg *config.Config, s string) (time.Time, error) {
	if s == "" {
		loc, err := cfg.Location()
		if err != nil {
			return time.Time{}, err
		}
		return time.Now().In(loc), nil
	}
	return parseInstant(cfg, s)
}

// parseInstant parses a time string using the configured layout, falling
// back to RFC 3339.
func parseInstant(cfg *config.Config, s string) (time.Time, error) {
	loc, err := cfg.Location()
	if err != nil {
		return time.Time{}, err
	}
	if t, err := time.ParseInLocation(cfg.Output.TimeLayout, s, loc); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("cannot parse time %q with layout %q or RFC 3339", s, cfg.Output.TimeLayout)
}
