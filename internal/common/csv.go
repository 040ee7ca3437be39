// Package common provides the CSV plumbing shared by the CLI commands.
package common

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	"github.com/gocarina/gocsv"
)

// DefaultDelimiter is the field separator used when none is given.
const DefaultDelimiter = ','

// ReadCSV decodes CSV rows from r into TCSVRow values using gocsv struct tags.
// The header row selects columns by name; unknown columns are ignored.
func ReadCSV[TCSVRow any](r io.Reader, delim rune) ([]TCSVRow, error) {
	reader := csv.NewReader(r)
	reader.Comma = delimiterOrDefault(delim)
	reader.TrimLeadingSpace = true

	var rows []TCSVRow
	if err := gocsv.UnmarshalCSV(reader, &rows); err != nil {
		if errors.Is(err, gocsv.ErrEmptyCSVFile) {
			return []TCSVRow{}, nil
		}
		return nil, fmt.Errorf("error parsing CSV data: %w", err)
	}
	return rows, nil
}

// WriteCSV encodes rows to w with a header line.
func WriteCSV[TCSVRow any](w io.Writer, rows []TCSVRow, delim rune) error {
	if rows == nil {
		return fmt.Errorf("cannot write nil rows to CSV")
	}

	writer := csv.NewWriter(w)
	writer.Comma = delimiterOrDefault(delim)

	if err := gocsv.MarshalCSV(rows, gocsv.NewSafeCSVWriter(writer)); err != nil {
		return fmt.Errorf("error writing CSV data: %w", err)
	}
	writer.Flush()
	return writer.Error()
}

func delimiterOrDefault(delim rune) rune {
	if delim == 0 {
		return DefaultDelimiter
	}
	return delim
}
