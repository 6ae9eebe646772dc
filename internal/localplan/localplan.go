// Package localplan reads content plan workbooks from local XLSX files, the
// offline path for backfilling a plan the document service no longer serves.
package localplan

import (
	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/noktah-inovasi/contentops/internal/model"
)

// Options configures the workbook read.
type Options struct {
	SheetIndex int    // default 0
	SheetName  string // if set, overrides SheetIndex
	MaxRows    int    // caps data rows when positive
}

// ReadPlan reads an XLSX content plan into rows keyed by header, the same
// shape the fetch stage produces. The first row is the header; data rows are
// padded or truncated to the header width.
func ReadPlan(path string, opts Options) ([]model.ContentRow, error) {
	f, err := xlsx.OpenFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "localplan: open %s", path)
	}

	sheet, err := getSheet(f, opts)
	if err != nil {
		return nil, err
	}
	if len(sheet.Rows) == 0 {
		return nil, nil
	}

	header := rowToStrings(sheet.Rows[0])
	var rows []model.ContentRow
	for _, raw := range sheet.Rows[1:] {
		if opts.MaxRows > 0 && len(rows) >= opts.MaxRows {
			break
		}
		cells := rowToStrings(raw)
		row := make(model.ContentRow, len(header))
		for i, h := range header {
			if i < len(cells) {
				row[h] = cells[i]
			} else {
				row[h] = ""
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func getSheet(f *xlsx.File, opts Options) (*xlsx.Sheet, error) {
	if opts.SheetName != "" {
		sheet, ok := f.Sheet[opts.SheetName]
		if !ok {
			return nil, eris.Errorf("localplan: sheet %q not found", opts.SheetName)
		}
		return sheet, nil
	}

	if opts.SheetIndex >= len(f.Sheets) {
		return nil, eris.Errorf("localplan: sheet index %d out of range (file has %d sheets)",
			opts.SheetIndex, len(f.Sheets))
	}
	return f.Sheets[opts.SheetIndex], nil
}

func rowToStrings(row *xlsx.Row) []string {
	cells := make([]string, len(row.Cells))
	for j, cell := range row.Cells {
		cells[j] = cell.String()
	}
	return cells
}
