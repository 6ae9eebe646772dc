package main

import (
	"encoding/json"
	"os"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/noktah-inovasi/contentops/internal/pipeline"
)

var (
	runMonth        string
	runMonthOffset  int
	runClients      []int
	runNames        []string
	runMinDelay     time.Duration
	runMaxDelay     time.Duration
	runMaxIssues    int
	runValidateOnly bool
	runRecursive    bool
	runOut          string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the full pipeline: roster, locate, fetch, convert, submit",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		if err := cfg.Validate("run"); err != nil {
			return err
		}

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck
		if err := st.Migrate(ctx); err != nil {
			return eris.Wrap(err, "migrate store")
		}

		p := pipeline.New(cfg, st, initSheets(), initDrive(), initJira(), loadTables())

		env, err := p.Run(ctx, pipeline.RunRequest{
			Month:         runMonth,
			MonthOffset:   runMonthOffset,
			ClientNumbers: runClients,
			ClientNames:   runNames,
			MinDelay:      runMinDelay,
			MaxDelay:      runMaxDelay,
			MaxIssues:     runMaxIssues,
			ValidateOnly:  runValidateOnly,
			Recursive:     runRecursive,
		})
		if err != nil {
			return eris.Wrap(err, "pipeline run")
		}

		zap.L().Info("run complete",
			zap.String("run_id", env.RunID),
			zap.String("period", env.Period),
			zap.Int("clients", len(env.Clients)),
			zap.Int("submissions", len(env.Submissions)),
		)

		out := os.Stdout
		if runOut != "" {
			f, err := os.Create(runOut)
			if err != nil {
				return eris.Wrapf(err, "create %s", runOut)
			}
			defer f.Close() //nolint:errcheck
			out = f
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(env)
	},
}

func init() {
	runCmd.Flags().StringVar(&runMonth, "month", "", `explicit period label, e.g. "September 2025" (default: next month)`)
	runCmd.Flags().IntVar(&runMonthOffset, "month-offset", 1, "months ahead of now when --month is not given")
	runCmd.Flags().IntSliceVar(&runClients, "clients", nil, "restrict to these roster numbers")
	runCmd.Flags().StringSliceVar(&runNames, "names", nil, "restrict to clients whose name contains any of these")
	runCmd.Flags().DurationVar(&runMinDelay, "min-delay", 0, "minimum inter-fetch delay (default from config)")
	runCmd.Flags().DurationVar(&runMaxDelay, "max-delay", 0, "maximum inter-fetch delay (default from config)")
	runCmd.Flags().IntVar(&runMaxIssues, "max-issues", 0, "per-client submission cap (default from config)")
	runCmd.Flags().BoolVar(&runValidateOnly, "validate-only", false, "validate and cap but submit nothing")
	runCmd.Flags().BoolVar(&runRecursive, "recursive", false, "search descendant folders too")
	runCmd.Flags().StringVar(&runOut, "out", "", "write the run envelope to a file instead of stdout")
	rootCmd.AddCommand(runCmd)
}
