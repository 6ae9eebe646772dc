package main

import (
	"encoding/json"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/noktah-inovasi/contentops/internal/period"
	"github.com/noktah-inovasi/contentops/internal/pipeline"
)

var (
	fetchMonth       string
	fetchMonthOffset int
	fetchClients     []int
	fetchNames       []string
	fetchMinDelay    time.Duration
	fetchMaxDelay    time.Duration
	fetchRecursive   bool
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Fetch every located content plan's rows",
	Long:  "Runs roster, locate, and fetch, printing the per-client content plans without converting or submitting anything.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		if err := cfg.Validate("plan"); err != nil {
			return err
		}

		periodLabel, err := period.Resolve(fetchMonth, fetchMonthOffset, time.Now(), period.Indonesian)
		if err != nil {
			return err
		}

		sheetsClient := initSheets()
		clients, err := pipeline.LoadRoster(ctx, sheetsClient,
			cfg.Google.RosterSpreadsheetID, cfg.Google.RosterSheet)
		if err != nil {
			return err
		}
		clients = pipeline.FilterClients(clients, fetchClients, fetchNames)

		matches := pipeline.LocateDocuments(ctx, initDrive(), clients, periodLabel, fetchRecursive)

		minDelay, maxDelay := fetchMinDelay, fetchMaxDelay
		if minDelay == 0 && maxDelay == 0 {
			minDelay = time.Duration(cfg.Fetch.MinDelaySecs) * time.Second
			maxDelay = time.Duration(cfg.Fetch.MaxDelaySecs) * time.Second
		}
		plans := pipeline.FetchPlans(ctx, sheetsClient, matches, cfg.Fetch.SheetName,
			pipeline.UniformDelay(minDelay, maxDelay))

		writeStageSnapshot(periodLabel, clients, matches, plans, nil)

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]any{
			"period":        periodLabel,
			"content_plans": plans,
		})
	},
}

func init() {
	fetchCmd.Flags().StringVar(&fetchMonth, "month", "", `explicit period label, e.g. "September 2025"`)
	fetchCmd.Flags().IntVar(&fetchMonthOffset, "month-offset", 1, "months ahead of now when --month is not given")
	fetchCmd.Flags().IntSliceVar(&fetchClients, "clients", nil, "restrict to these roster numbers")
	fetchCmd.Flags().StringSliceVar(&fetchNames, "names", nil, "restrict to clients whose name contains any of these")
	fetchCmd.Flags().DurationVar(&fetchMinDelay, "min-delay", 0, "minimum inter-fetch delay (default from config)")
	fetchCmd.Flags().DurationVar(&fetchMaxDelay, "max-delay", 0, "maximum inter-fetch delay (default from config)")
	fetchCmd.Flags().BoolVar(&fetchRecursive, "recursive", false, "search descendant folders too")
	rootCmd.AddCommand(fetchCmd)
}
