package main

import (
	"context"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/noktah-inovasi/contentops/internal/lookup"
	"github.com/noktah-inovasi/contentops/internal/model"
	"github.com/noktah-inovasi/contentops/internal/pipeline"
	"github.com/noktah-inovasi/contentops/internal/resilience"
	"github.com/noktah-inovasi/contentops/internal/store"
	"github.com/noktah-inovasi/contentops/pkg/drive"
	"github.com/noktah-inovasi/contentops/pkg/jira"
	"github.com/noktah-inovasi/contentops/pkg/sheets"
)

func initStore(ctx context.Context) (store.Store, error) {
	switch cfg.Store.Driver {
	case "sqlite":
		dsn := cfg.Store.DatabaseURL
		if dsn == "" {
			dsn = "contentops.db"
		}
		return store.NewSQLite(dsn)
	case "postgres":
		return store.NewPostgres(ctx, cfg.Store.DatabaseURL, nil)
	default:
		return nil, eris.Errorf("unsupported store driver: %s", cfg.Store.Driver)
	}
}

func initSheets() sheets.Client {
	opts := []sheets.Option{sheets.WithRateLimit(cfg.Google.RateLimit)}
	if cfg.Google.SheetsBaseURL != "" {
		opts = append(opts, sheets.WithBaseURL(cfg.Google.SheetsBaseURL))
	}
	return sheets.NewClient(cfg.Google.Token, opts...)
}

func initDrive() drive.Client {
	opts := []drive.Option{drive.WithRateLimit(cfg.Google.RateLimit)}
	if cfg.Google.DriveBaseURL != "" {
		opts = append(opts, drive.WithBaseURL(cfg.Google.DriveBaseURL))
	}
	return drive.NewClient(cfg.Google.Token, opts...)
}

func initJira() jira.Client {
	policy := resilience.Policy{
		Attempts: cfg.Jira.RetryAttempts + 1,
		Backoff:  time.Duration(cfg.Jira.RetryBackoffSecs) * time.Second,
		OnRetry:  resilience.RetryLogger("jira", "bulk create"),
	}
	return jira.NewClient(cfg.Jira.BaseURL, cfg.Jira.Email, cfg.Jira.Token,
		jira.WithRetryPolicy(policy))
}

// writeStageSnapshot persists a partial envelope for the single-stage
// commands when a snapshot directory is configured. Failures only warn.
func writeStageSnapshot(periodLabel string, clients []model.ClientRecord, matches []model.DocumentMatch, plans []model.ClientPlan, conversions []model.ClientConversion) {
	if cfg.Snapshot.Dir == "" {
		return
	}
	env := &model.RunEnvelope{
		Period:      periodLabel,
		StartedAt:   time.Now().UTC(),
		Clients:     clients,
		Matches:     matches,
		Plans:       plans,
		Conversions: conversions,
	}
	if _, err := pipeline.NewSnapshotWriter(cfg.Snapshot.Dir).WriteRun(env); err != nil {
		zap.L().Warn("snapshot write failed", zap.Error(err))
	}
}

func loadTables() *lookup.Tables {
	if cfg.Lookup.TablesPath == "" {
		return lookup.Defaults()
	}
	tables, err := lookup.Load(cfg.Lookup.TablesPath)
	if err != nil {
		zap.L().Warn("lookup tables load failed, using built-in tables",
			zap.String("path", cfg.Lookup.TablesPath),
			zap.Error(err),
		)
		return lookup.Defaults()
	}
	return tables
}
