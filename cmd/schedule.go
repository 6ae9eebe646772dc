package main

import (
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/noktah-inovasi/contentops/internal/pipeline"
)

var (
	scheduleCron         string
	scheduleMonthOffset  int
	scheduleMaxIssues    int
	scheduleValidateOnly bool
	scheduleRecursive    bool
)

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Run the full pipeline on a cron schedule",
	Long:  "Stays resident and runs the full pipeline on the given cron expression. The default fires at 09:00 on the 25th of each month, preparing next month's work items.",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.Validate("run"); err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck
		if err := st.Migrate(ctx); err != nil {
			return eris.Wrap(err, "migrate store")
		}

		p := pipeline.New(cfg, st, initSheets(), initDrive(), initJira(), loadTables())

		c := cron.New()
		_, err = c.AddFunc(scheduleCron, func() {
			start := time.Now()
			zap.L().Info("schedule: run starting", zap.String("cron", scheduleCron))

			env, err := p.Run(ctx, pipeline.RunRequest{
				MonthOffset:  scheduleMonthOffset,
				MaxIssues:    scheduleMaxIssues,
				ValidateOnly: scheduleValidateOnly,
				Recursive:    scheduleRecursive,
			})
			if err != nil {
				zap.L().Error("schedule: run failed", zap.Error(err))
				return
			}
			zap.L().Info("schedule: run complete",
				zap.String("run_id", env.RunID),
				zap.String("period", env.Period),
				zap.Int("submissions", len(env.Submissions)),
				zap.Duration("elapsed", time.Since(start)),
			)
		})
		if err != nil {
			return eris.Wrapf(err, "invalid cron expression %q", scheduleCron)
		}

		c.Start()
		zap.L().Info("schedule: waiting", zap.String("cron", scheduleCron))

		<-ctx.Done()
		zap.L().Info("schedule: shutting down")
		<-c.Stop().Done()
		return nil
	},
}

func init() {
	scheduleCmd.Flags().StringVar(&scheduleCron, "cron", "0 9 25 * *", "cron expression for pipeline runs")
	scheduleCmd.Flags().IntVar(&scheduleMonthOffset, "month-offset", 1, "months ahead of each tick's date")
	scheduleCmd.Flags().IntVar(&scheduleMaxIssues, "max-issues", 0, "per-client submission cap (default from config)")
	scheduleCmd.Flags().BoolVar(&scheduleValidateOnly, "validate-only", false, "validate and cap but submit nothing")
	scheduleCmd.Flags().BoolVar(&scheduleRecursive, "recursive", false, "search descendant folders too")
	rootCmd.AddCommand(scheduleCmd)
}
