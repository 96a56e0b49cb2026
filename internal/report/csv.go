package report

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
)

// WriteCSV writes table as UTF-8 CSV with a header row.
func WriteCSV(w io.Writer, table Table) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(table.Headers); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}
	if err := writer.WriteAll(table.Rows); err != nil {
		return fmt.Errorf("failed to write csv rows: %w", err)
	}
	return nil
}

// ReadCSV parses a file written by WriteCSV.
func ReadCSV(r io.Reader) (Table, error) {
	records, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return Table{}, fmt.Errorf("failed to read csv: %w", err)
	}
	if len(records) == 0 {
		return Table{}, errors.New("csv has no header row")
	}

	return Table{Headers: records[0], Rows: records[1:]}, nil
}
