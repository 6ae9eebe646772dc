package pipeline

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noktah-inovasi/contentops/internal/model"
	"github.com/noktah-inovasi/contentops/pkg/jira"
)

// SubmitOptions controls the submission stage.
type SubmitOptions struct {
	// MaxIssues caps each client's batch. Items beyond the cap are dropped
	// with a warning, never submitted.
	MaxIssues int
	// ValidateOnly stops after validation, submitting nothing.
	ValidateOnly bool
	// ClientDelay is the pause between consecutive client submissions.
	ClientDelay time.Duration
}

// ValidateItems checks each work item's required fields and applies the batch
// cap. Invalid items are excluded with per-item reasons; the valid remainder
// is truncated to maxIssues with a warning when the cap bites.
func ValidateItems(items []model.WorkItem, maxIssues int) model.ValidationResult {
	result := model.ValidationResult{OriginalCount: len(items)}

	for i, item := range items {
		var reasons []string
		if item.Fields.Project.Key == "" {
			reasons = append(reasons, "missing project key")
		}
		if item.Fields.IssueType.ID == "" {
			reasons = append(reasons, "missing issue type id")
		}
		if strings.TrimSpace(item.Fields.Summary) == "" {
			reasons = append(reasons, "blank summary")
		}

		if len(reasons) > 0 {
			result.Invalid = append(result.Invalid, model.InvalidItem{Index: i, Reasons: reasons})
			continue
		}
		result.Valid = append(result.Valid, item)
	}

	if maxIssues > 0 && len(result.Valid) > maxIssues {
		result.Warnings = append(result.Warnings, fmt.Sprintf(
			"batch truncated from %d to %d issues", len(result.Valid), maxIssues))
		result.Valid = result.Valid[:maxIssues]
	}
	return result
}

// SubmitConversions validates and submits each client's batch independently:
// one client's failure never blocks the rest. Between consecutive clients the
// configured delay is applied (not after the last).
func SubmitConversions(ctx context.Context, client jira.Client, conversions []model.ClientConversion, opts SubmitOptions) []model.ClientSubmission {
	submissions := make([]model.ClientSubmission, 0, len(conversions))

	for i, conv := range conversions {
		submissions = append(submissions, submitOne(ctx, client, conv, opts))

		if i < len(conversions)-1 && opts.ClientDelay > 0 && !opts.ValidateOnly {
			if !sleep(ctx, opts.ClientDelay) {
				zap.L().Warn("submit: canceled during inter-client delay")
				break
			}
		}
	}
	return submissions
}

func submitOne(ctx context.Context, client jira.Client, conv model.ClientConversion, opts SubmitOptions) model.ClientSubmission {
	sub := model.ClientSubmission{ClientName: conv.ClientName}
	sub.Validation = ValidateItems(conv.Items, opts.MaxIssues)

	for _, w := range sub.Validation.Warnings {
		zap.L().Warn("submit: "+w, zap.String("client", conv.ClientName))
	}

	if sub.Validation.FinalCount() == 0 {
		sub.Status = model.SubmissionNoValid
		zap.L().Warn("submit: no valid issues",
			zap.String("client", conv.ClientName),
			zap.Int("original", sub.Validation.OriginalCount),
		)
		return sub
	}

	if opts.ValidateOnly {
		sub.Status = model.SubmissionValidated
		zap.L().Info("submit: validate-only, skipping submission",
			zap.String("client", conv.ClientName),
			zap.Int("valid", sub.Validation.FinalCount()),
		)
		return sub
	}

	fields := make([]any, len(sub.Validation.Valid))
	for i, item := range sub.Validation.Valid {
		fields[i] = item.Fields
	}

	result, err := client.CreateIssuesBulk(ctx, fields)
	if err != nil {
		sub.Status = model.SubmissionError
		sub.Error = err.Error()
		sub.Outcome = &model.BatchOutcome{
			RequestedCount: len(fields),
			Error:          err.Error(),
		}
		zap.L().Error("submit: bulk create failed",
			zap.String("client", conv.ClientName),
			zap.Error(err),
		)
		return sub
	}

	outcome := &model.BatchOutcome{
		RequestedCount: len(fields),
		CreatedCount:   len(result.Issues),
		ErrorCount:     len(result.Errors),
	}
	for _, e := range result.Errors {
		outcome.Errors = append(outcome.Errors, e)
	}
	sub.Outcome = outcome
	sub.Status = model.SubmissionSuccess

	zap.L().Info("submit: bulk create complete",
		zap.String("client", conv.ClientName),
		zap.Int("requested", outcome.RequestedCount),
		zap.Int("created", outcome.CreatedCount),
		zap.Int("errors", outcome.ErrorCount),
	)
	return sub
}
