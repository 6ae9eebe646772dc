package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/noktah-inovasi/contentops/internal/model"
	"github.com/noktah-inovasi/contentops/internal/store"
)

var (
	runsStatus string
	runsPeriod string
	runsLimit  int
	runsOffset int
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Inspect recorded pipeline runs",
}

var runsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded runs",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck
		if err := st.Migrate(ctx); err != nil {
			return eris.Wrap(err, "migrate store")
		}

		runs, err := st.ListRuns(ctx, store.RunFilter{
			Status: model.RunStatus(runsStatus),
			Period: runsPeriod,
			Limit:  runsLimit,
			Offset: runsOffset,
		})
		if err != nil {
			return eris.Wrap(err, "list runs")
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tPERIOD\tSTATUS\tCLIENTS\tCREATED\tFAILED\tSTARTED")
		for _, r := range runs {
			clients, created, failed := "-", "-", "-"
			if r.Result != nil {
				clients = fmt.Sprintf("%d/%d", r.Result.ClientsProcessed, r.Result.ClientsTotal)
				created = fmt.Sprintf("%d", r.Result.IssuesCreated)
				failed = fmt.Sprintf("%d", r.Result.IssuesFailed)
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
				r.ID, r.Period, r.Status, clients, created, failed,
				r.CreatedAt.Format("2006-01-02 15:04:05"),
			)
		}
		return w.Flush()
	},
}

var runsShowCmd = &cobra.Command{
	Use:   "show <run-id>",
	Short: "Show one run in full",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck
		if err := st.Migrate(ctx); err != nil {
			return eris.Wrap(err, "migrate store")
		}

		run, err := st.GetRun(ctx, args[0])
		if err != nil {
			return eris.Wrapf(err, "get run %s", args[0])
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(run)
	},
}

func init() {
	runsListCmd.Flags().StringVar(&runsStatus, "status", "", "filter by run status")
	runsListCmd.Flags().StringVar(&runsPeriod, "period", "", "filter by period label")
	runsListCmd.Flags().IntVar(&runsLimit, "limit", 20, "maximum rows")
	runsListCmd.Flags().IntVar(&runsOffset, "offset", 0, "rows to skip")
	runsCmd.AddCommand(runsListCmd, runsShowCmd)
	rootCmd.AddCommand(runsCmd)
}
