// Package encoder implements output artifact encoders.
package encoder

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/jittakal/batchetl/pkg/encoder"
	"github.com/jittakal/batchetl/pkg/record"
)

// Ensure implementation satisfies interface at compile time.
var _ encoder.Encoder = (*CSVEncoder)(nil)

// CSVEncoder implements encoder.Encoder for the delimited-text contract
// format: a header row followed by one row per record, numeric values
// rendered with 2 decimal places, absent values as empty cells.
type CSVEncoder struct{}

// NewCSVEncoder creates a new CSV encoder.
func NewCSVEncoder() *CSVEncoder {
	return &CSVEncoder{}
}

// Encode serializes the table. An empty table produces a header-only
// artifact.
func (e *CSVEncoder) Encode(rows record.Table) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write([]string{record.FieldName, record.FieldHeight, record.FieldWeight}); err != nil {
		return nil, fmt.Errorf("failed to write csv header: %w", err)
	}
	for _, row := range rows {
		cells := []string{row.Name, formatCell(row.Height), formatCell(row.Weight)}
		if err := w.Write(cells); err != nil {
			return nil, fmt.Errorf("failed to write csv row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush csv writer: %w", err)
	}
	return buf.Bytes(), nil
}

// FileExtension returns the file extension for this format.
func (e *CSVEncoder) FileExtension() string {
	return ".csv"
}

// Format returns the output format this encoder produces.
func (e *CSVEncoder) Format() record.FileFormat {
	return record.FormatCSV
}

func formatCell(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', 2, 64)
}
