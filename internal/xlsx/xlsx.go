// Package xlsx adapts the workbook format to the pipeline: a reader
// producing ordered column→value records and a writer accepting named
// sheets of rows.
package xlsx

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// ReadTable reads the first sheet of a workbook: one header row of
// column names followed by data rows. Cell values arrive as display
// text (rich-text runs and hyperlink cells are flattened by the
// workbook library). A workbook with no sheet or no header row is a
// fatal configuration error.
func ReadTable(path string) (columns []string, rows []map[string]string, err error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("opening workbook %s: %w", path, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil, fmt.Errorf("workbook %s has no readable sheet", path)
	}

	raw, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, nil, fmt.Errorf("reading sheet %q: %w", sheets[0], err)
	}
	if len(raw) == 0 {
		return nil, nil, fmt.Errorf("sheet %q has no header row", sheets[0])
	}

	columns = raw[0]
	rows = make([]map[string]string, 0, len(raw)-1)
	for _, cells := range raw[1:] {
		row := make(map[string]string, len(columns))
		for i, col := range columns {
			if col == "" {
				continue
			}
			if i < len(cells) {
				row[col] = cells[i]
			} else {
				row[col] = "" // ragged row: missing cells become empty
			}
		}
		rows = append(rows, row)
	}
	return columns, rows, nil
}

// Writer accumulates named sheets and writes them as one workbook.
type Writer struct {
	file   *excelize.File
	sheets int
}

// NewWriter creates an empty workbook writer.
func NewWriter() *Writer {
	return &Writer{file: excelize.NewFile()}
}

// AddSheet appends a sheet. Cell values may be strings or numbers;
// rows need not be equal length.
func (w *Writer) AddSheet(name string, rows [][]any) error {
	if _, err := w.file.NewSheet(name); err != nil {
		return fmt.Errorf("creating sheet %q: %w", name, err)
	}
	for i, cells := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("sheet %q row %d: %w", name, i+1, err)
		}
		if err := w.file.SetSheetRow(name, cell, &cells); err != nil {
			return fmt.Errorf("writing sheet %q row %d: %w", name, i+1, err)
		}
	}
	w.sheets++
	return nil
}

// Save writes the workbook to path as a single artifact. The default
// placeholder sheet is dropped so only added sheets remain.
func (w *Writer) Save(path string) error {
	if w.sheets == 0 {
		return fmt.Errorf("no sheets to write")
	}
	if err := w.file.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("dropping placeholder sheet: %w", err)
	}
	if err := w.file.SaveAs(path); err != nil {
		return fmt.Errorf("writing workbook %s: %w", path, err)
	}
	return w.file.Close()
}
