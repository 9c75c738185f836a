package encoder

import (
	"bytes"
	"fmt"

	"github.com/parquet-go/parquet-go"

	"github.com/jittakal/batchetl/pkg/encoder"
	"github.com/jittakal/batchetl/pkg/record"
)

// Ensure implementation satisfies interface at compile time.
var _ encoder.Encoder = (*ParquetEncoder)(nil)

// RowParquet represents the Parquet schema for canonical rows. Height and
// weight use pointers for proper NULL handling of absent values.
type RowParquet struct {
	Name   string   `parquet:"name,dict"`
	Height *float64 `parquet:"height,optional"`
	Weight *float64 `parquet:"weight,optional"`
}

// ParquetEncoder implements encoder.Encoder for Apache Parquet columnar
// format. Supports multiple compression codecs: SNAPPY (default), GZIP, LZ4,
// ZSTD.
type ParquetEncoder struct {
	compressionName string
}

// NewParquetEncoder creates a new Parquet encoder with specified compression.
func NewParquetEncoder(compression string) *ParquetEncoder {
	return &ParquetEncoder{
		compressionName: compression,
	}
}

// compressionCodec converts string compression name to parquet WriterOption.
func compressionCodec(compression string) parquet.WriterOption {
	switch compression {
	case "snappy", "SNAPPY":
		return parquet.Compression(&parquet.Snappy)
	case "gzip", "GZIP":
		return parquet.Compression(&parquet.Gzip)
	case "lz4", "LZ4":
		return parquet.Compression(&parquet.Lz4Raw)
	case "zstd", "ZSTD":
		return parquet.Compression(&parquet.Zstd)
	case "uncompressed", "UNCOMPRESSED", "none", "NONE":
		return parquet.Compression(&parquet.Uncompressed)
	default:
		return parquet.Compression(&parquet.Snappy)
	}
}

// Encode serializes the table to Parquet bytes.
func (e *ParquetEncoder) Encode(rows record.Table) ([]byte, error) {
	parquetRows := make([]RowParquet, len(rows))
	for i, row := range rows {
		parquetRows[i] = RowParquet{
			Name:   row.Name,
			Height: row.Height,
			Weight: row.Weight,
		}
	}

	var buf bytes.Buffer
	schema := parquet.SchemaOf(new(RowParquet))
	writer := parquet.NewGenericWriter[RowParquet](
		&buf,
		schema,
		compressionCodec(e.compressionName),
		parquet.CreatedBy("batch-etl-pipeline", "1.0", "0"),
	)

	if len(parquetRows) > 0 {
		if _, err := writer.Write(parquetRows); err != nil {
			writer.Close()
			return nil, fmt.Errorf("failed to write rows: %w", err)
		}
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to close writer: %w", err)
	}

	return buf.Bytes(), nil
}

// FileExtension returns the file extension for this format.
func (e *ParquetEncoder) FileExtension() string {
	return ".parquet"
}

// Format returns the output format this encoder produces.
func (e *ParquetEncoder) Format() record.FileFormat {
	return record.FormatParquet
}
