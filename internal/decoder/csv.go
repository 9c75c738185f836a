package decoder

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/jittakal/batchetl/pkg/decoder"
	"github.com/jittakal/batchetl/pkg/record"
)

// Ensure implementation satisfies interface at compile time.
var _ decoder.Decoder = (*CSVDecoder)(nil)

// CSVDecoder decodes comma-delimited payloads with a header line.
type CSVDecoder struct{}

// NewCSVDecoder creates a new CSV decoder.
func NewCSVDecoder() *CSVDecoder {
	return &CSVDecoder{}
}

// Decode decodes the payload into raw records. The first line is the header;
// every following line maps to one record keyed by the header names. Rows
// shorter than the header leave the trailing fields absent.
func (d *CSVDecoder) Decode(data []byte) ([]record.RawRecord, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read csv header: %w", err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	var records []record.RawRecord
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read csv row: %w", err)
		}

		raw := make(record.RawRecord, len(header))
		for i, name := range header {
			if name == "" {
				continue
			}
			if i < len(row) {
				raw[name] = row[i]
			}
		}
		records = append(records, raw)
	}

	return records, nil
}

// Format returns the source format this decoder handles.
func (d *CSVDecoder) Format() record.SourceFormat {
	return record.SourceCSV
}
