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
	planMonth       string
	planMonthOffset int
	planClients     []int
	planNames       []string
	planRecursive   bool
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Report which clients have a content plan for the period",
	Long:  "Runs the roster and locate stages only, printing the per-client document search results.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		if err := cfg.Validate("plan"); err != nil {
			return err
		}

		periodLabel, err := period.Resolve(planMonth, planMonthOffset, time.Now(), period.Indonesian)
		if err != nil {
			return err
		}

		clients, err := pipeline.LoadRoster(ctx, initSheets(),
			cfg.Google.RosterSpreadsheetID, cfg.Google.RosterSheet)
		if err != nil {
			return err
		}
		clients = pipeline.FilterClients(clients, planClients, planNames)

		matches := pipeline.LocateDocuments(ctx, initDrive(), clients, periodLabel, planRecursive)

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]any{
			"period":  periodLabel,
			"matches": matches,
		})
	},
}

func init() {
	planCmd.Flags().StringVar(&planMonth, "month", "", `explicit period label, e.g. "September 2025"`)
	planCmd.Flags().IntVar(&planMonthOffset, "month-offset", 1, "months ahead of now when --month is not given")
	planCmd.Flags().IntSliceVar(&planClients, "clients", nil, "restrict to these roster numbers")
	planCmd.Flags().StringSliceVar(&planNames, "names", nil, "restrict to clients whose name contains any of these")
	planCmd.Flags().BoolVar(&planRecursive, "recursive", false, "search descendant folders too")
	rootCmd.AddCommand(planCmd)
}
