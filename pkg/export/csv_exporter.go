// Package export renders tabular roster data as CSV or PDF documents.
package export

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
)

// Table is a titled grid of string cells. Every row should have one cell per
// column; short rows are padded and long rows truncated.
type Table struct {
	Title   string
	Columns []string
	Rows    [][]string
}

var errNoColumns = errors.New("export requires at least one column")

func (t Table) normalisedRow(row []string) []string {
	out := make([]string, len(t.Columns))
	copy(out, row)
	return out
}

// CSVExporter renders tables as RFC 4180 CSV.
type CSVExporter struct{}

// NewCSVExporter builds a CSV exporter.
func NewCSVExporter() *CSVExporter {
	return &CSVExporter{}
}

// ContentType is the MIME type of rendered output.
func (e *CSVExporter) ContentType() string { return "text/csv" }

// Extension is the file extension of rendered output.
func (e *CSVExporter) Extension() string { return "csv" }

// Render produces CSV bytes with a header row. The title is not written.
func (e *CSVExporter) Render(table Table) ([]byte, error) {
	if len(table.Columns) == 0 {
		return nil, errNoColumns
	}
	buf := &bytes.Buffer{}
	writer := csv.NewWriter(buf)
	if err := writer.Write(table.Columns); err != nil {
		return nil, fmt.Errorf("write csv header: %w", err)
	}
	for _, row := range table.Rows {
		if err := writer.Write(table.normalisedRow(row)); err != nil {
			return nil, fmt.Errorf("write csv row: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}
