package model

// InvalidItem is a record excluded from submission, with the reasons.
type InvalidItem struct {
	Index   int      `json:"index"`
	Reasons []string `json:"errors"`
}

// ValidationResult is the outcome of the validate+cap step for one batch.
// Valid holds the records that survived validation, already truncated to the
// submission cap; Warnings carries the truncation notice when one applied.
type ValidationResult struct {
	OriginalCount int           `json:"original_count"`
	Valid         []WorkItem    `json:"valid_issues"`
	Invalid       []InvalidItem `json:"invalid_issues,omitempty"`
	Warnings      []string      `json:"warnings,omitempty"`
}

// FinalCount is the number of records that will be submitted.
func (v ValidationResult) FinalCount() int { return len(v.Valid) }

// BatchOutcome reports one bulk submission attempt. The external system may
// accept a strict subset, so CreatedCount+ErrorCount may be below
// RequestedCount.
type BatchOutcome struct {
	RequestedCount int    `json:"requested_count"`
	CreatedCount   int    `json:"created_count"`
	ErrorCount     int    `json:"error_count"`
	Errors         []any  `json:"errors,omitempty"`
	Error          string `json:"error,omitempty"`
}

// SubmissionStatus classifies a per-client submission result.
type SubmissionStatus string

const (
	SubmissionSuccess   SubmissionStatus = "success"
	SubmissionValidated SubmissionStatus = "validated"
	SubmissionNoValid   SubmissionStatus = "no_valid_issues"
	SubmissionError     SubmissionStatus = "error"
)

// ClientSubmission is the submit stage's result for one client.
type ClientSubmission struct {
	ClientName string           `json:"client_name"`
	Status     SubmissionStatus `json:"status"`
	Validation ValidationResult `json:"validation"`
	Outcome    *BatchOutcome    `json:"bulk_creation,omitempty"`
	Error      string           `json:"error,omitempty"`
}
