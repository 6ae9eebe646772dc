package pipeline

import (
	"context"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/noktah-inovasi/contentops/internal/model"
	"github.com/noktah-inovasi/contentops/pkg/sheets"
)

const (
	rosterNameColumn   = "Name"
	rosterFolderColumn = "Content Plan Folder ID"
)

// LoadRoster reads the client roster sheet into ClientRecords. Numbers are
// assigned from the sheet's row order starting at 1 and stay stable for the
// rest of the run. Rows missing a name or folder ref are kept; the locator
// decides what to skip.
func LoadRoster(ctx context.Context, client sheets.Client, spreadsheetID, sheetName string) ([]model.ClientRecord, error) {
	table, err := client.ReadTable(ctx, spreadsheetID, sheetName, sheets.ReadOptions{})
	if err != nil {
		return nil, eris.Wrap(err, "roster: read sheet")
	}

	hasName, hasFolder := false, false
	for _, h := range table.Header {
		switch h {
		case rosterNameColumn:
			hasName = true
		case rosterFolderColumn:
			hasFolder = true
		}
	}
	if !hasName || !hasFolder {
		return nil, eris.Errorf("roster: sheet %q missing required columns %q and %q (got %v)",
			sheetName, rosterNameColumn, rosterFolderColumn, table.Header)
	}

	var clients []model.ClientRecord
	for i, row := range table.Maps() {
		clients = append(clients, model.ClientRecord{
			Number:    i + 1,
			Name:      strings.TrimSpace(row[rosterNameColumn]),
			FolderRef: strings.TrimSpace(row[rosterFolderColumn]),
		})
	}

	zap.L().Info("roster: loaded clients",
		zap.String("sheet", sheetName),
		zap.Int("count", len(clients)),
	)
	return clients, nil
}

// FilterClients narrows the roster to the requested client numbers and names.
// Empty filters select everything; when both are given a client passes if it
// matches either. Name matching is case-insensitive substring containment.
func FilterClients(clients []model.ClientRecord, numbers []int, names []string) []model.ClientRecord {
	if len(numbers) == 0 && len(names) == 0 {
		return clients
	}

	wantNum := make(map[int]bool, len(numbers))
	for _, n := range numbers {
		wantNum[n] = true
	}

	matchesName := func(clientName string) bool {
		lower := strings.ToLower(clientName)
		for _, n := range names {
			if needle := strings.ToLower(strings.TrimSpace(n)); needle != "" && strings.Contains(lower, needle) {
				return true
			}
		}
		return false
	}

	var out []model.ClientRecord
	for _, c := range clients {
		if wantNum[c.Number] || matchesName(c.Name) {
			out = append(out, c)
		}
	}
	return out
}
