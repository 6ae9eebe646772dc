package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/noktah-inovasi/contentops/internal/model"
	"github.com/noktah-inovasi/contentops/internal/pipeline"
)

var (
	submitFile         string
	submitMaxIssues    int
	submitValidateOnly bool
)

var submitCmd = &cobra.Command{
	Use:   "submit",
	Short: "Submit saved work item batches to the tracker",
	Long: "Validates, caps, and bulk-submits per-client work item batches from a saved " +
		"conversions.json. Without --file the latest snapshot directory is used.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		if !submitValidateOnly {
			if err := cfg.Validate("submit"); err != nil {
				return err
			}
		}

		path := submitFile
		if path == "" {
			dir, err := latestSnapshotDir(cfg.Snapshot.Dir)
			if err != nil {
				return err
			}
			path = filepath.Join(dir, "conversions.json")
		}
		conversions, err := readConversionsFile(path)
		if err != nil {
			return err
		}
		if len(conversions) == 0 {
			return eris.Errorf("no conversions in %s", path)
		}
		zap.L().Info("submit: conversions loaded",
			zap.String("path", path),
			zap.Int("clients", len(conversions)),
		)

		jiraClient := initJira()
		if !submitValidateOnly {
			info, err := jiraClient.GetServerInfo(ctx)
			if err != nil {
				return eris.Wrap(err, "tracker connectivity check")
			}
			zap.L().Info("submit: tracker reachable",
				zap.String("base_url", info.BaseURL),
				zap.String("version", info.Version),
			)
		}

		maxIssues := submitMaxIssues
		if maxIssues <= 0 {
			maxIssues = cfg.Jira.MaxIssues
		}
		submissions := pipeline.SubmitConversions(ctx, jiraClient, conversions, pipeline.SubmitOptions{
			MaxIssues:    maxIssues,
			ValidateOnly: submitValidateOnly,
			ClientDelay:  time.Duration(cfg.Jira.ClientDelaySecs) * time.Second,
		})

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]any{
			"source":      path,
			"submissions": submissions,
		})
	},
}

func readConversionsFile(path string) ([]model.ClientConversion, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var conversions []model.ClientConversion
	if err := json.Unmarshal(data, &conversions); err != nil {
		return nil, err
	}
	return conversions, nil
}

// latestSnapshotDir picks the newest timestamped directory under baseDir.
func latestSnapshotDir(baseDir string) (string, error) {
	if baseDir == "" {
		return "", eris.New("no snapshot directory configured; pass --file")
	}
	entries, err := os.ReadDir(baseDir)
	if err != nil {
		return "", eris.Wrapf(err, "read snapshot directory %s", baseDir)
	}

	var dirs []string
	for _, e := range entries {
		if e.IsDir() {
			dirs = append(dirs, e.Name())
		}
	}
	if len(dirs) == 0 {
		return "", eris.Errorf("no snapshot runs under %s", baseDir)
	}
	sort.Strings(dirs)
	return filepath.Join(baseDir, dirs[len(dirs)-1]), nil
}

func init() {
	submitCmd.Flags().StringVar(&submitFile, "file", "", "conversions.json to submit (default: latest snapshot)")
	submitCmd.Flags().IntVar(&submitMaxIssues, "max-issues", 0, "per-client submission cap (default from config)")
	submitCmd.Flags().BoolVar(&submitValidateOnly, "validate-only", false, "validate and cap but submit nothing")
	rootCmd.AddCommand(submitCmd)
}
