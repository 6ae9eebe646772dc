package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/noktah-inovasi/contentops/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "contentops",
	Short: "Content marketing operations pipeline",
	Long:  "Reads the client roster, locates each client's monthly content plan, fetches its rows, converts them to tracker work items, and submits them in validated bulk batches.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
