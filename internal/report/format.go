package report

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

// Format is an export file format.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// baseFileName is the download name of an export, without extension.
const baseFileName = "candidates"

var ErrUnknownFormat = errors.New("unknown export format")

// ParseFormat parses a format name. An empty name selects CSV.
func ParseFormat(name string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(name))) {
	case "", FormatCSV:
		return FormatCSV, nil
	case FormatXLSX, "excel":
		return FormatXLSX, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, name)
	}
}

// ContentType returns the MIME type of the format.
func ContentType(format Format) string {
	if format == FormatXLSX {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "text/csv; charset=utf-8"
}

// FileName returns the download file name of the format.
func FileName(format Format) string {
	return baseFileName + "." + string(format)
}

// Write serialises table in the given format.
func Write(w io.Writer, format Format, table Table) error {
	switch format {
	case FormatCSV:
		return WriteCSV(w, table)
	case FormatXLSX:
		return WriteXLSX(w, table)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}
