package pipeline

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/noktah-inovasi/contentops/internal/model"
	"github.com/noktah-inovasi/contentops/pkg/drive"
)

// ExpectedDocumentName renders the content plan document name searched for a
// client and period.
func ExpectedDocumentName(clientName, periodLabel string) string {
	return fmt.Sprintf("Content Plan - %s - %s", clientName, periodLabel)
}

// LocateDocuments searches each client's folder for the period's content plan
// document. One DocumentMatch is returned per input client, in order: skipped
// clients (blank name or folder ref) carry a SkipReason, search failures carry
// an Error, and successful searches record the winning rule plus every
// candidate seen. A search failure never stops the other clients.
func LocateDocuments(ctx context.Context, client drive.Client, clients []model.ClientRecord, periodLabel string, recursive bool) []model.DocumentMatch {
	matches := make([]model.DocumentMatch, 0, len(clients))
	for _, c := range clients {
		matches = append(matches, locateOne(ctx, client, c, periodLabel, recursive))
	}

	found := 0
	for _, m := range matches {
		if m.Found() {
			found++
		}
	}
	zap.L().Info("locate: document search complete",
		zap.String("period", periodLabel),
		zap.Int("clients", len(clients)),
		zap.Int("found", found),
	)
	return matches
}

func locateOne(ctx context.Context, client drive.Client, c model.ClientRecord, periodLabel string, recursive bool) model.DocumentMatch {
	match := model.DocumentMatch{
		Number:     c.Number,
		ClientName: c.Name,
		FolderRef:  c.FolderRef,
	}

	if c.Name == "" || c.FolderRef == "" {
		match.Skipped = true
		match.SkipReason = "missing client name or folder ref"
		zap.L().Warn("locate: skipping client",
			zap.Int("number", c.Number),
			zap.String("client", c.Name),
			zap.String("reason", match.SkipReason),
		)
		return match
	}

	match.ExpectedName = ExpectedDocumentName(c.Name, periodLabel)

	files, err := client.ListFiles(ctx, c.FolderRef, "Content Plan - "+c.Name, recursive)
	if err != nil {
		match.Error = err.Error()
		zap.L().Error("locate: search failed",
			zap.String("client", c.Name),
			zap.Error(err),
		)
		return match
	}

	for _, f := range files {
		match.Candidates = append(match.Candidates, model.Candidate{ID: f.ID, Name: f.Name})
	}

	// Exact name wins; a name merely containing the expected string is the
	// fallback. First hit wins within each rule.
	for _, f := range files {
		if f.Name == match.ExpectedName {
			match.DocumentID = f.ID
			match.MatchRule = model.MatchExact
			return match
		}
	}
	for _, f := range files {
		if strings.Contains(f.Name, match.ExpectedName) {
			match.DocumentID = f.ID
			match.MatchRule = model.MatchSubstring
			return match
		}
	}

	zap.L().Warn("locate: no document matched",
		zap.String("client", c.Name),
		zap.String("expected", match.ExpectedName),
		zap.Int("candidates", len(files)),
	)
	return match
}
