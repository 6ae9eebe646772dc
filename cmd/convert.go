package main

import (
	"encoding/json"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/noktah-inovasi/contentops/internal/model"
	"github.com/noktah-inovasi/contentops/internal/period"
	"github.com/noktah-inovasi/contentops/internal/pipeline"
)

var (
	convertMonth       string
	convertMonthOffset int
	convertClients     []int
	convertNames       []string
	convertMinDelay    time.Duration
	convertMaxDelay    time.Duration
	convertRecursive   bool
	convertPlansFile   string
)

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert fetched content plans into tracker work items",
	Long: "Runs roster, locate, fetch, and convert, printing the per-client work item batches. " +
		"With --plans the fetch is skipped and plans are read from a saved content_plans.json instead.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		periodLabel, err := period.Resolve(convertMonth, convertMonthOffset, time.Now(), period.Indonesian)
		if err != nil {
			return err
		}

		var (
			clients []model.ClientRecord
			matches []model.DocumentMatch
			plans   []model.ClientPlan
		)
		if convertPlansFile != "" {
			plans, err = readPlansFile(convertPlansFile)
			if err != nil {
				return err
			}
		} else {
			if err := cfg.Validate("plan"); err != nil {
				return err
			}

			sheetsClient := initSheets()
			clients, err = pipeline.LoadRoster(ctx, sheetsClient,
				cfg.Google.RosterSpreadsheetID, cfg.Google.RosterSheet)
			if err != nil {
				return err
			}
			clients = pipeline.FilterClients(clients, convertClients, convertNames)

			matches = pipeline.LocateDocuments(ctx, initDrive(), clients, periodLabel, convertRecursive)

			minDelay, maxDelay := convertMinDelay, convertMaxDelay
			if minDelay == 0 && maxDelay == 0 {
				minDelay = time.Duration(cfg.Fetch.MinDelaySecs) * time.Second
				maxDelay = time.Duration(cfg.Fetch.MaxDelaySecs) * time.Second
			}
			plans = pipeline.FetchPlans(ctx, sheetsClient, matches, cfg.Fetch.SheetName,
				pipeline.UniformDelay(minDelay, maxDelay))
		}

		conversions := pipeline.ConvertPlans(plans, loadTables(), pipeline.ConvertOptions{
			ProjectKey:  cfg.Jira.ProjectKey,
			IssueTypeID: cfg.Jira.IssueTypeID,
		})

		writeStageSnapshot(periodLabel, clients, matches, plans, conversions)

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]any{
			"period":      periodLabel,
			"conversions": conversions,
		})
	},
}

func readPlansFile(path string) ([]model.ClientPlan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var plans []model.ClientPlan
	if err := json.Unmarshal(data, &plans); err != nil {
		return nil, err
	}
	return plans, nil
}

func init() {
	convertCmd.Flags().StringVar(&convertMonth, "month", "", `explicit period label, e.g. "September 2025"`)
	convertCmd.Flags().IntVar(&convertMonthOffset, "month-offset", 1, "months ahead of now when --month is not given")
	convertCmd.Flags().IntSliceVar(&convertClients, "clients", nil, "restrict to these roster numbers")
	convertCmd.Flags().StringSliceVar(&convertNames, "names", nil, "restrict to clients whose name contains any of these")
	convertCmd.Flags().DurationVar(&convertMinDelay, "min-delay", 0, "minimum inter-fetch delay (default from config)")
	convertCmd.Flags().DurationVar(&convertMaxDelay, "max-delay", 0, "maximum inter-fetch delay (default from config)")
	convertCmd.Flags().BoolVar(&convertRecursive, "recursive", false, "search descendant folders too")
	convertCmd.Flags().StringVar(&convertPlansFile, "plans", "", "convert a saved content_plans.json instead of fetching")
	rootCmd.AddCommand(convertCmd)
}
