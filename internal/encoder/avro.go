package encoder

import (
	"bytes"
	"fmt"

	"github.com/linkedin/goavro/v2"

	"github.com/jittakal/batchetl/pkg/encoder"
	"github.com/jittakal/batchetl/pkg/record"
)

// Ensure implementation satisfies interface at compile time.
var _ encoder.Encoder = (*AvroEncoder)(nil)

// AvroEncoder implements encoder.Encoder for Apache Avro binary format.
// Produces OCF (Object Container File) output with nullable double unions for
// the numeric fields, so absent values survive as Avro nulls.
type AvroEncoder struct {
	codec           *goavro.Codec
	compressionName string
}

// NewAvroEncoder creates a new Avro encoder with specified compression.
func NewAvroEncoder(compression string) (*AvroEncoder, error) {
	codec, err := goavro.NewCodec(avroSchema())
	if err != nil {
		return nil, fmt.Errorf("failed to create avro codec: %w", err)
	}

	compressionName, err := avroCompression(compression)
	if err != nil {
		return nil, err
	}

	return &AvroEncoder{
		codec:           codec,
		compressionName: compressionName,
	}, nil
}

// avroSchema returns the Avro schema for canonical rows.
func avroSchema() string {
	return `{
		"type": "record",
		"name": "CanonicalRow",
		"namespace": "com.batch.etl.pipeline",
		"fields": [
			{"name": "name", "type": "string"},
			{"name": "height", "type": ["null", "double"], "default": null},
			{"name": "weight", "type": ["null", "double"], "default": null}
		]
	}`
}

// avroCompression maps a configured compression to an OCF codec name.
func avroCompression(compression string) (string, error) {
	switch compression {
	case "", "null", "none", "uncompressed":
		return goavro.CompressionNullLabel, nil
	case "deflate":
		return goavro.CompressionDeflateLabel, nil
	case "snappy":
		return goavro.CompressionSnappyLabel, nil
	default:
		return "", fmt.Errorf("unsupported avro compression: %s", compression)
	}
}

// Encode serializes the table to Avro OCF bytes.
func (e *AvroEncoder) Encode(rows record.Table) ([]byte, error) {
	var buf bytes.Buffer
	ocfWriter, err := goavro.NewOCFWriter(goavro.OCFConfig{
		W:               &buf,
		Codec:           e.codec,
		CompressionName: e.compressionName,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create OCF writer: %w", err)
	}

	for _, row := range rows {
		if err := ocfWriter.Append([]interface{}{e.convertToAvroMap(row)}); err != nil {
			return nil, fmt.Errorf("failed to write row: %w", err)
		}
	}

	return buf.Bytes(), nil
}

// convertToAvroMap converts a Row to its Avro map representation, using
// union-typed values for the nullable numeric fields.
func (e *AvroEncoder) convertToAvroMap(row record.Row) map[string]interface{} {
	avroMap := map[string]interface{}{
		"name":   row.Name,
		"height": nil,
		"weight": nil,
	}
	if row.Height != nil {
		avroMap["height"] = goavro.Union("double", *row.Height)
	}
	if row.Weight != nil {
		avroMap["weight"] = goavro.Union("double", *row.Weight)
	}
	return avroMap
}

// FileExtension returns the file extension for this format.
func (e *AvroEncoder) FileExtension() string {
	return ".avro"
}

// Format returns the output format this encoder produces.
func (e *AvroEncoder) Format() record.FileFormat {
	return record.FormatAvro
}
