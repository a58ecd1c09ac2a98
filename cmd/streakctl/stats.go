package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/2beens/gymstreak/internal/streak"

	"github.com/spf13/cobra"
)

type statsOptions struct {
	restDays int
	timezone string
	now      string
	asJSON   bool
}

func newStatsCmd() *cobra.Command {
	opts := &statsOptions{}
	cmd := &cobra.Command{
		Use:   "stats [logs.csv]",
		Short: "Compute streak stats from a CSV export of workout logs",
		Long: `Compute streak stats from a CSV file of workout logs.

The file needs a header with exercise_id and workout_instant (RFC 3339) columns,
log_id is optional. Use "-" or no argument to read from stdin.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := cmd.InOrStdin()
			if len(args) == 1 && args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return fmt.Errorf("open logs file: %w", err)
				}
				defer f.Close()
				in = f
			}
			return runStats(in, cmd.OutOrStdout(), opts)
		},
	}

	cmd.Flags().IntVarP(&opts.restDays, "rest-days", "r", streak.DefaultRestDaysBuffer, "rest days tolerated without breaking the streak")
	cmd.Flags().StringVar(&opts.timezone, "tz", streak.DefaultTimezone, "IANA timezone used to split days")
	cmd.Flags().StringVar(&opts.now, "now", "", "evaluate as of this RFC 3339 instant (default: current time)")
	cmd.Flags().BoolVar(&opts.asJSON, "json", false, "print stats as JSON")

	return cmd
}

func runStats(in io.Reader, out io.Writer, opts *statsOptions) error {
	settings, err := streak.NewSettings(opts.restDays, opts.timezone)
	if err != nil {
		return err
	}

	now := time.Now()
	if opts.now != "" {
		now, err = time.Parse(time.RFC3339, opts.now)
		if err != nil {
			return fmt.Errorf("invalid --now [%s]: %w", opts.now, err)
		}
	}

	workoutLogs, err := readLogsCSV(in)
	if err != nil {
		return fmt.Errorf("read logs: %w", err)
	}

	logStats, err := streak.ComputeStats(workoutLogs, settings, now)
	if err != nil {
		return err
	}

	if opts.asJSON {
		return renderJSON(out, logStats)
	}
	return renderText(out, logStats, settings.Timezone())
}
