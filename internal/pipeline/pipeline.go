// Package pipeline runs the content operations stages: roster, locate,
// fetch, convert, submit. Stages run in order; each hands its items to the
// next, per-client failures travel beside successes, and only stage-entry
// connectivity failures stop the run.
package pipeline

import (
	"context"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/noktah-inovasi/contentops/internal/config"
	"github.com/noktah-inovasi/contentops/internal/lookup"
	"github.com/noktah-inovasi/contentops/internal/model"
	"github.com/noktah-inovasi/contentops/internal/period"
	"github.com/noktah-inovasi/contentops/internal/store"
	"github.com/noktah-inovasi/contentops/pkg/drive"
	"github.com/noktah-inovasi/contentops/pkg/jira"
	"github.com/noktah-inovasi/contentops/pkg/sheets"
)

// Pipeline orchestrates the five content operations stages.
type Pipeline struct {
	cfg    *config.Config
	store  store.Store
	sheets sheets.Client
	drive  drive.Client
	jira   jira.Client
	tables *lookup.Tables

	// delay overrides the fetch-stage delay strategy; nil means the uniform
	// delay from config.
	delay     DelayFunc
	snapshots *SnapshotWriter
	now       func() time.Time
}

// New creates a Pipeline with all dependencies.
func New(
	cfg *config.Config,
	st store.Store,
	sheetsClient sheets.Client,
	driveClient drive.Client,
	jiraClient jira.Client,
	tables *lookup.Tables,
) *Pipeline {
	var snapshots *SnapshotWriter
	if cfg.Snapshot.Dir != "" {
		snapshots = NewSnapshotWriter(cfg.Snapshot.Dir)
	}
	return &Pipeline{
		cfg:       cfg,
		store:     st,
		sheets:    sheetsClient,
		drive:     driveClient,
		jira:      jiraClient,
		tables:    tables,
		snapshots: snapshots,
		now:       time.Now,
	}
}

// Run executes the full pipeline. The returned envelope always carries
// whatever stages completed, including on error.
func (p *Pipeline) Run(ctx context.Context, params RunRequest) (*model.RunEnvelope, error) {
	env := &model.RunEnvelope{
		StartedAt: p.now().UTC(),
		Params:    params.Params(),
	}

	periodLabel, err := period.Resolve(params.Month, params.MonthOffset, p.now(), period.Indonesian)
	if err != nil {
		env.Error = err.Error()
		return env, eris.Wrap(err, "pipeline: resolve period")
	}
	env.Period = periodLabel

	log := zap.L().With(zap.String("period", periodLabel))
	log.Info("pipeline: starting run")

	var run *model.Run
	if p.store != nil {
		run, err = p.store.CreateRun(ctx, periodLabel, env.Params)
		if err != nil {
			log.Warn("pipeline: failed to create run record", zap.Error(err))
		} else {
			env.RunID = run.ID
		}
	}

	setStatus := func(status model.RunStatus) {
		if run == nil {
			return
		}
		if statusErr := p.store.UpdateRunStatus(ctx, run.ID, status); statusErr != nil {
			log.Warn("pipeline: failed to update status", zap.Error(statusErr))
		}
	}

	trackStage := func(name string, fn func() (map[string]any, error)) error {
		var stage *model.RunStage
		if run != nil {
			var stageErr error
			stage, stageErr = p.store.CreateStage(ctx, run.ID, name)
			if stageErr != nil {
				log.Warn("pipeline: failed to create stage record",
					zap.String("stage", name), zap.Error(stageErr))
			}
		}

		start := time.Now()
		summary, fnErr := fn()
		info := model.StageInfo{
			Name:     name,
			Status:   model.StageStatusComplete,
			Duration: time.Since(start).Milliseconds(),
			Summary:  summary,
		}
		if fnErr != nil {
			info.Status = model.StageStatusFailed
			info.Error = fnErr.Error()
			log.Error("pipeline: stage failed",
				zap.String("stage", name),
				zap.Int64("duration_ms", info.Duration),
				zap.Error(fnErr),
			)
		} else {
			log.Info("pipeline: stage complete",
				zap.String("stage", name),
				zap.Int64("duration_ms", info.Duration),
			)
		}

		if stage != nil {
			_ = p.store.CompleteStage(ctx, stage.ID, &info)
		}
		env.Stages = append(env.Stages, info)
		return fnErr
	}

	fail := func(stageErr error) (*model.RunEnvelope, error) {
		env.Error = stageErr.Error()
		env.FinishedAt = p.now().UTC()
		setStatus(model.RunStatusFailed)
		p.saveResult(ctx, run, env, log)
		p.writeSnapshot(env, log)
		return env, stageErr
	}

	// ===== Stage 1: Roster =====
	setStatus(model.RunStatusRoster)
	if err := trackStage("roster", func() (map[string]any, error) {
		clients, rosterErr := LoadRoster(ctx, p.sheets,
			p.cfg.Google.RosterSpreadsheetID, p.cfg.Google.RosterSheet)
		if rosterErr != nil {
			return nil, rosterErr
		}
		env.Clients = FilterClients(clients, params.ClientNumbers, params.ClientNames)
		return map[string]any{
			"total":    len(clients),
			"selected": len(env.Clients),
		}, nil
	}); err != nil {
		return fail(err)
	}

	// ===== Stage 2: Locate =====
	setStatus(model.RunStatusLocating)
	_ = trackStage("locate", func() (map[string]any, error) {
		env.Matches = LocateDocuments(ctx, p.drive, env.Clients, periodLabel, params.Recursive)
		found, skipped := 0, 0
		for _, m := range env.Matches {
			if m.Found() {
				found++
			}
			if m.Skipped {
				skipped++
			}
		}
		return map[string]any{
			"clients": len(env.Matches),
			"found":   found,
			"skipped": skipped,
		}, nil
	})

	// ===== Stage 3: Fetch =====
	setStatus(model.RunStatusFetching)
	_ = trackStage("fetch", func() (map[string]any, error) {
		delayFn := p.delay
		if delayFn == nil {
			delayFn = UniformDelay(p.fetchDelayBounds(params))
		}
		env.Plans = FetchPlans(ctx, p.sheets, env.Matches, p.cfg.Fetch.SheetName, delayFn)
		fetched, rows := 0, 0
		for _, plan := range env.Plans {
			if plan.Error == "" {
				fetched++
				rows += len(plan.Rows)
			}
		}
		return map[string]any{
			"fetched": fetched,
			"rows":    rows,
		}, nil
	})

	// ===== Stage 4: Convert =====
	setStatus(model.RunStatusConverting)
	_ = trackStage("convert", func() (map[string]any, error) {
		env.Conversions = ConvertPlans(env.Plans, p.tables, ConvertOptions{
			ProjectKey:  p.cfg.Jira.ProjectKey,
			IssueTypeID: p.cfg.Jira.IssueTypeID,
			Now:         p.now,
		})
		items := 0
		for _, conv := range env.Conversions {
			items += len(conv.Items)
		}
		return map[string]any{
			"clients": len(env.Conversions),
			"items":   items,
		}, nil
	})

	// ===== Stage 5: Submit =====
	setStatus(model.RunStatusSubmitting)
	if err := trackStage("submit", func() (map[string]any, error) {
		if !params.ValidateOnly {
			if _, infoErr := p.jira.GetServerInfo(ctx); infoErr != nil {
				return nil, eris.Wrap(infoErr, "pipeline: tracker unreachable")
			}
		}

		env.Submissions = SubmitConversions(ctx, p.jira, env.Conversions, SubmitOptions{
			MaxIssues:    p.maxIssues(params),
			ValidateOnly: params.ValidateOnly,
			ClientDelay:  time.Duration(p.cfg.Jira.ClientDelaySecs) * time.Second,
		})

		requested, created, failed := submissionTotals(env.Submissions)
		return map[string]any{
			"requested": requested,
			"created":   created,
			"failed":    failed,
		}, nil
	}); err != nil {
		return fail(err)
	}

	env.FinishedAt = p.now().UTC()
	setStatus(model.RunStatusComplete)
	p.saveResult(ctx, run, env, log)
	p.writeSnapshot(env, log)

	requested, created, failed := submissionTotals(env.Submissions)
	log.Info("pipeline: run complete",
		zap.String("run_id", env.RunID),
		zap.Int("clients", len(env.Clients)),
		zap.Int("requested", requested),
		zap.Int("created", created),
		zap.Int("failed", failed),
	)
	return env, nil
}

// RunRequest are the caller-supplied knobs for one run.
type RunRequest struct {
	Month         string
	MonthOffset   int
	ClientNumbers []int
	ClientNames   []string
	MinDelay      time.Duration
	MaxDelay      time.Duration
	MaxIssues     int
	ValidateOnly  bool
	Recursive     bool
}

// Params renders the request in its persisted form.
func (r RunRequest) Params() model.RunParams {
	return model.RunParams{
		Month:         r.Month,
		ClientNumbers: r.ClientNumbers,
		ClientNames:   r.ClientNames,
		MinDelay:      r.MinDelay,
		MaxDelay:      r.MaxDelay,
		MaxIssues:     r.MaxIssues,
		ValidateOnly:  r.ValidateOnly,
		Recursive:     r.Recursive,
	}
}

func (p *Pipeline) fetchDelayBounds(params RunRequest) (time.Duration, time.Duration) {
	min, max := params.MinDelay, params.MaxDelay
	if min == 0 && max == 0 {
		min = time.Duration(p.cfg.Fetch.MinDelaySecs) * time.Second
		max = time.Duration(p.cfg.Fetch.MaxDelaySecs) * time.Second
	}
	return min, max
}

func (p *Pipeline) maxIssues(params RunRequest) int {
	if params.MaxIssues > 0 {
		return params.MaxIssues
	}
	return p.cfg.Jira.MaxIssues
}

func (p *Pipeline) saveResult(ctx context.Context, run *model.Run, env *model.RunEnvelope, log *zap.Logger) {
	if run == nil {
		return
	}
	requested, created, failed := submissionTotals(env.Submissions)
	processed := 0
	for _, plan := range env.Plans {
		if plan.Error == "" {
			processed++
		}
	}
	result := &model.RunResult{
		ClientsTotal:     len(env.Clients),
		ClientsProcessed: processed,
		IssuesRequested:  requested,
		IssuesCreated:    created,
		IssuesFailed:     failed,
		ValidateOnly:     env.Params.ValidateOnly,
		Stages:           env.Stages,
		Error:            env.Error,
	}
	if err := p.store.UpdateRunResult(ctx, run.ID, result); err != nil {
		log.Warn("pipeline: failed to save run result", zap.Error(err))
	}
}

func (p *Pipeline) writeSnapshot(env *model.RunEnvelope, log *zap.Logger) {
	if p.snapshots == nil {
		return
	}
	if _, err := p.snapshots.WriteRun(env); err != nil {
		log.Warn("pipeline: failed to write snapshot", zap.Error(err))
	}
}

func submissionTotals(subs []model.ClientSubmission) (requested, created, failed int) {
	for _, s := range subs {
		if s.Outcome == nil {
			continue
		}
		requested += s.Outcome.RequestedCount
		created += s.Outcome.CreatedCount
		failed += s.Outcome.ErrorCount
	}
	return requested, created, failed
}
