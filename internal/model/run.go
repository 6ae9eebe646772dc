package model

import "time"

// RunStatus tracks a pipeline run through its stages.
type RunStatus string

const (
	RunStatusQueued     RunStatus = "queued"
	RunStatusRoster     RunStatus = "roster"
	RunStatusLocating   RunStatus = "locating"
	RunStatusFetching   RunStatus = "fetching"
	RunStatusConverting RunStatus = "converting"
	RunStatusSubmitting RunStatus = "submitting"
	RunStatusComplete   RunStatus = "complete"
	RunStatusFailed     RunStatus = "failed"
)

// StageStatus is the terminal state of one stage.
type StageStatus string

const (
	StageStatusRunning  StageStatus = "running"
	StageStatusComplete StageStatus = "complete"
	StageStatusFailed   StageStatus = "failed"
	StageStatusSkipped  StageStatus = "skipped"
)

// StageInfo summarizes one executed stage: status, duration, the fatal error
// if one occurred, and stage-specific counters.
type StageInfo struct {
	Name     string         `json:"name"`
	Status   StageStatus    `json:"status"`
	Duration int64          `json:"duration_ms"`
	Error    string         `json:"error,omitempty"`
	Summary  map[string]any `json:"summary,omitempty"`
}

// RunParams are the caller-supplied knobs for one pipeline run.
type RunParams struct {
	Month         string        `json:"month,omitempty"`
	ClientNumbers []int         `json:"client_numbers,omitempty"`
	ClientNames   []string      `json:"client_names,omitempty"`
	MinDelay      time.Duration `json:"min_delay,omitempty"`
	MaxDelay      time.Duration `json:"max_delay,omitempty"`
	MaxIssues     int           `json:"max_issues,omitempty"`
	ValidateOnly  bool          `json:"validate_only,omitempty"`
	Recursive     bool          `json:"recursive,omitempty"`
}

// RunEnvelope accumulates every stage's output for one run. Stages append
// their results; a fatal stage error stops the run with the partial envelope
// intact. Error is set only for run-fatal failures.
type RunEnvelope struct {
	RunID       string             `json:"run_id,omitempty"`
	Period      string             `json:"period,omitempty"`
	StartedAt   time.Time          `json:"start_time"`
	FinishedAt  time.Time          `json:"end_time,omitzero"`
	Params      RunParams          `json:"params"`
	Stages      []StageInfo        `json:"stages"`
	Clients     []ClientRecord     `json:"clients,omitempty"`
	Matches     []DocumentMatch    `json:"matches,omitempty"`
	Plans       []ClientPlan       `json:"content_plans,omitempty"`
	Conversions []ClientConversion `json:"conversions,omitempty"`
	Submissions []ClientSubmission `json:"submissions,omitempty"`
	Error       string             `json:"error,omitempty"`
}

// RunResult is the persisted summary of a completed run.
type RunResult struct {
	ClientsTotal     int         `json:"clients_total"`
	ClientsProcessed int         `json:"clients_processed"`
	IssuesRequested  int         `json:"issues_requested"`
	IssuesCreated    int         `json:"issues_created"`
	IssuesFailed     int         `json:"issues_failed"`
	ValidateOnly     bool        `json:"validate_only"`
	Stages           []StageInfo `json:"stages,omitempty"`
	Error            string      `json:"error,omitempty"`
}

// Run is a stored pipeline run.
type Run struct {
	ID        string     `json:"id"`
	Period    string     `json:"period"`
	Params    RunParams  `json:"params"`
	Status    RunStatus  `json:"status"`
	Result    *RunResult `json:"result,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// RunStage is a stored stage record belonging to a run.
type RunStage struct {
	ID        string      `json:"id"`
	RunID     string      `json:"run_id"`
	Name      string      `json:"name"`
	Status    StageStatus `json:"status"`
	StartedAt time.Time   `json:"started_at"`
}
