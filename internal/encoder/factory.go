package encoder

import (
	"fmt"

	apperrors "github.com/jittakal/batchetl/internal/errors"
	"github.com/jittakal/batchetl/pkg/encoder"
	"github.com/jittakal/batchetl/pkg/record"
)

// Factory creates encoders based on format and configuration.
type Factory struct {
	format      record.FileFormat
	compression string
}

// NewFactory creates a new encoder factory. An empty compression selects the
// format's default.
func NewFactory(format record.FileFormat, compression string) *Factory {
	if compression == "" {
		compression = DefaultCompression(format)
	}
	return &Factory{
		format:      format,
		compression: compression,
	}
}

// CreateEncoder creates an encoder based on the configured format.
func (f *Factory) CreateEncoder() (encoder.Encoder, error) {
	switch f.format {
	case record.FormatCSV:
		return NewCSVEncoder(), nil
	case record.FormatParquet:
		return NewParquetEncoder(f.compression), nil
	case record.FormatAvro:
		return NewAvroEncoder(f.compression)
	default:
		return nil, fmt.Errorf("%w: %s", apperrors.ErrUnsupportedFormat, f.format)
	}
}

// SupportedFormats returns a list of supported output formats.
func SupportedFormats() []record.FileFormat {
	return []record.FileFormat{
		record.FormatCSV,
		record.FormatParquet,
		record.FormatAvro,
	}
}

// DefaultCompression returns the default compression for a format.
func DefaultCompression(format record.FileFormat) string {
	switch format {
	case record.FormatParquet:
		return "snappy"
	case record.FormatAvro:
		return "deflate"
	default:
		return "none"
	}
}
