package main

import (
	"encoding/json"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/noktah-inovasi/contentops/internal/localplan"
	"github.com/noktah-inovasi/contentops/internal/model"
	"github.com/noktah-inovasi/contentops/internal/pipeline"
)

var (
	importFile       string
	importClientName string
	importSheetName  string
	importSheetIndex int
	importMaxRows    int
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Convert a local XLSX content plan into work items",
	Long:  "Reads a content plan workbook from disk and converts its rows, no document service involved. Useful for backfills and plans shared outside the drive.",
	RunE: func(cmd *cobra.Command, args []string) error {
		rows, err := localplan.ReadPlan(importFile, localplan.Options{
			SheetIndex: importSheetIndex,
			SheetName:  importSheetName,
			MaxRows:    importMaxRows,
		})
		if err != nil {
			return err
		}
		zap.L().Info("import: workbook read",
			zap.String("file", importFile),
			zap.Int("rows", len(rows)),
		)

		plan := model.ClientPlan{
			ClientName: importClientName,
			Rows:       rows,
			FetchedAt:  time.Now().UTC(),
		}
		conversions := pipeline.ConvertPlans([]model.ClientPlan{plan}, loadTables(), pipeline.ConvertOptions{
			ProjectKey:  cfg.Jira.ProjectKey,
			IssueTypeID: cfg.Jira.IssueTypeID,
		})

		writeStageSnapshot("", nil, nil, []model.ClientPlan{plan}, conversions)

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]any{
			"file":        importFile,
			"conversions": conversions,
		})
	},
}

func init() {
	importCmd.Flags().StringVar(&importFile, "file", "", "XLSX content plan to read (required)")
	importCmd.Flags().StringVar(&importClientName, "client", "imported", "client name for the converted batch")
	importCmd.Flags().StringVar(&importSheetName, "sheet-name", "", "worksheet name (default: first sheet)")
	importCmd.Flags().IntVar(&importSheetIndex, "sheet-index", 0, "worksheet index when --sheet-name is not given")
	importCmd.Flags().IntVar(&importMaxRows, "max-rows", 0, "cap on data rows (0 = all)")
	_ = importCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(importCmd)
}
