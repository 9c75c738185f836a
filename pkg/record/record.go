// Package record defines the core data types shared by the pipeline stages.
//
// A run of the pipeline produces a single table of standardized rows. Source
// files decode into RawRecords, which are coerced into Rows; the extractor
// concatenates Rows from all files into a Table that flows through the
// transform and load stages. Nothing in this package is retained across runs.
package record

import "strconv"

// Canonical field names shared by all source formats.
const (
	FieldName   = "name"
	FieldHeight = "height"
	FieldWeight = "weight"
)

// SourceFormat identifies one of the recognized input file formats.
type SourceFormat string

const (
	SourceCSV  SourceFormat = "csv"
	SourceJSON SourceFormat = "json"
	SourceXML  SourceFormat = "xml"
)

// FileFormat identifies the output artifact format.
type FileFormat string

const (
	FormatCSV     FileFormat = "csv"
	FormatParquet FileFormat = "parquet"
	FormatAvro    FileFormat = "avro"
)

// RawRecord is a single decoded unit from one source file, prior to
// standardization. Fields absent from the source are absent from the map.
type RawRecord map[string]string

// Row is the standardized record shape shared across all sources.
// Height and Weight are nil when the source value was absent or not numeric;
// absence propagates through the pipeline rather than failing a row.
type Row struct {
	Name   string
	Height *float64
	Weight *float64
}

// Table is an ordered sequence of rows.
type Table []Row

// FromRaw coerces a RawRecord into a Row. Missing fields stay at their zero
// value; non-numeric height or weight values coerce to nil.
func FromRaw(raw RawRecord) Row {
	return Row{
		Name:   raw[FieldName],
		Height: toFloat(raw, FieldHeight),
		Weight: toFloat(raw, FieldWeight),
	}
}

// FromRawAll coerces a batch of RawRecords, preserving order.
func FromRawAll(raws []RawRecord) Table {
	rows := make(Table, 0, len(raws))
	for _, raw := range raws {
		rows = append(rows, FromRaw(raw))
	}
	return rows
}

func toFloat(raw RawRecord, field string) *float64 {
	s, ok := raw[field]
	if !ok || s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}

// Float returns a pointer to v. Convenience for building rows in tests and
// callers that construct tables directly.
func Float(v float64) *float64 {
	return &v
}
