package localplan

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v2"
)

func writeWorkbook(t *testing.T, build func(f *xlsx.File)) string {
	t.Helper()
	f := xlsx.NewFile()
	build(f)
	path := filepath.Join(t.TempDir(), "plan.xlsx")
	require.NoError(t, f.Save(path))
	return path
}

func addRow(sheet *xlsx.Sheet, cells ...string) {
	row := sheet.AddRow()
	for _, c := range cells {
		row.AddCell().SetString(c)
	}
}

func TestReadPlan(t *testing.T) {
	path := writeWorkbook(t, func(f *xlsx.File) {
		sheet, err := f.AddSheet("Content Plan")
		require.NoError(t, err)
		addRow(sheet, "Topik", "Tanggal", "Bentuk")
		addRow(sheet, "Launch post", "2025-09-10", "Feed")
		addRow(sheet, "Teaser reel", "2025-09-12")
	})

	rows, err := ReadPlan(path, Options{})
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "Launch post", rows[0]["Topik"])
	assert.Equal(t, "2025-09-10", rows[0]["Tanggal"])
	assert.Equal(t, "Feed", rows[0]["Bentuk"])
	assert.Equal(t, "", rows[1]["Bentuk"], "short rows pad to the header width")
}

func TestReadPlanBySheetName(t *testing.T) {
	path := writeWorkbook(t, func(f *xlsx.File) {
		first, err := f.AddSheet("Notes")
		require.NoError(t, err)
		addRow(first, "unrelated")

		second, err := f.AddSheet("Plan")
		require.NoError(t, err)
		addRow(second, "Topik")
		addRow(second, "From the named sheet")
	})

	rows, err := ReadPlan(path, Options{SheetName: "Plan"})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "From the named sheet", rows[0]["Topik"])

	_, err = ReadPlan(path, Options{SheetName: "Missing"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `sheet "Missing" not found`)
}

func TestReadPlanMaxRows(t *testing.T) {
	path := writeWorkbook(t, func(f *xlsx.File) {
		sheet, err := f.AddSheet("Plan")
		require.NoError(t, err)
		addRow(sheet, "Topik")
		for i := 0; i < 10; i++ {
			addRow(sheet, "row")
		}
	})

	rows, err := ReadPlan(path, Options{MaxRows: 3})
	require.NoError(t, err)
	assert.Len(t, rows, 3)
}

func TestReadPlanEmptySheet(t *testing.T) {
	path := writeWorkbook(t, func(f *xlsx.File) {
		_, err := f.AddSheet("Plan")
		require.NoError(t, err)
	})

	rows, err := ReadPlan(path, Options{})
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestReadPlanErrors(t *testing.T) {
	_, err := ReadPlan(filepath.Join(t.TempDir(), "missing.xlsx"), Options{})
	require.Error(t, err)

	path := writeWorkbook(t, func(f *xlsx.File) {
		_, addErr := f.AddSheet("Only")
		require.NoError(t, addErr)
	})
	_, err = ReadPlan(path, Options{SheetIndex: 5})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "out of range")
}
