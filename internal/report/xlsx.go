package report

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/xuri/excelize/v2"
)

// SheetName is the name of the only worksheet in an XLSX export.
const SheetName = "Candidates"

var numericColumns = map[string]bool{
	ColumnExperience: true,
	ColumnScore:      true,
}

// WriteXLSX writes table as a single-sheet workbook with a bold, frozen,
// filterable header row. Score and experience cells are stored as numbers.
func WriteXLSX(w io.Writer, table Table) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	if err := setRow(f, 1, toCells(table.Headers, nil)); err != nil {
		return err
	}
	for i, row := range table.Rows {
		if err := setRow(f, i+2, toCells(row, table.Headers)); err != nil {
			return err
		}
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}
	if err := f.SetRowStyle(SheetName, 1, 1, bold); err != nil {
		return fmt.Errorf("failed to style header: %w", err)
	}

	if err := f.SetPanes(SheetName, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return fmt.Errorf("failed to freeze header: %w", err)
	}

	if len(table.Headers) > 0 {
		last, err := excelize.CoordinatesToCellName(len(table.Headers), len(table.Rows)+1)
		if err != nil {
			return fmt.Errorf("failed to compute filter range: %w", err)
		}
		if err := f.AutoFilter(SheetName, "A1:"+last, nil); err != nil {
			return fmt.Errorf("failed to add auto filter: %w", err)
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

// ReadXLSX reads the sheet written by WriteXLSX back into a table. Numeric
// cells come back in their display form.
func ReadXLSX(r io.Reader) (Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return Table{}, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(SheetName)
	if err != nil {
		return Table{}, fmt.Errorf("failed to read sheet %s: %w", SheetName, err)
	}
	if len(rows) == 0 {
		return Table{}, errors.New("workbook has no header row")
	}

	return Table{Headers: rows[0], Rows: rows[1:]}, nil
}

func setRow(f *excelize.File, row int, cells []interface{}) error {
	ref, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("failed to compute cell name: %w", err)
	}
	if err := f.SetSheetRow(SheetName, ref, &cells); err != nil {
		return fmt.Errorf("failed to write row %d: %w", row, err)
	}
	return nil
}

func toCells(values, headers []string) []interface{} {
	cells := make([]interface{}, len(values))
	for i, value := range values {
		cells[i] = value
		if i < len(headers) && numericColumns[headers[i]] {
			if n, err := strconv.ParseFloat(value, 64); err == nil {
				cells[i] = n
			}
		}
	}
	return cells
}
