package xlsx

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestWriteReadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "table.xlsx")

	w := NewWriter()
	require.NoError(t, w.AddSheet("Input", [][]any{
		{"Key", "Assignee", "Time Spent"},
		{"TASK-1", "Alice", "2h"},
		{"TASK-2"}, // ragged row
	}))
	require.NoError(t, w.Save(path))

	columns, rows, err := ReadTable(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"Key", "Assignee", "Time Spent"}, columns)
	require.Len(t, rows, 2)
	assert.Equal(t, "Alice", rows[0]["Assignee"])
	assert.Equal(t, "2h", rows[0]["Time Spent"])
	// Missing cells come back as empty strings, not absent keys.
	assert.Equal(t, "", rows[1]["Assignee"])
	assert.Equal(t, "TASK-2", rows[1]["Key"])
}

func TestReadMissingFile(t *testing.T) {
	_, _, err := ReadTable(filepath.Join(t.TempDir(), "nope.xlsx"))
	assert.Error(t, err)
}

func TestReadEmptySheet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.xlsx")
	f := excelize.NewFile()
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	_, _, err := ReadTable(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "header")
}

func TestWriterMultipleSheets(t *testing.T) {
	path := filepath.Join(t.TempDir(), "multi.xlsx")

	w := NewWriter()
	require.NoError(t, w.AddSheet("Results", [][]any{{"Key"}, {"A"}}))
	require.NoError(t, w.AddSheet("Transformed Data", [][]any{{"Project"}, {"Platform"}}))
	require.NoError(t, w.AddSheet("Project Summary", [][]any{{"Project"}, {"Platform"}}))
	require.NoError(t, w.Save(path))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Results", "Transformed Data", "Project Summary"}, f.GetSheetList())
}

func TestWriterNumericCells(t *testing.T) {
	path := filepath.Join(t.TempDir(), "num.xlsx")

	w := NewWriter()
	require.NoError(t, w.AddSheet("S", [][]any{{"Hours"}, {10.5}}))
	require.NoError(t, w.Save(path))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	value, err := f.GetCellValue("S", "A2")
	require.NoError(t, err)
	assert.Equal(t, "10.5", value)
}

func TestWriterRejectsEmptyWorkbook(t *testing.T) {
	w := NewWriter()
	assert.Error(t, w.Save(filepath.Join(t.TempDir(), "x.xlsx")))
}
