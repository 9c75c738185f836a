package decoder

import (
	"path/filepath"
	"strings"

	"github.com/jittakal/batchetl/pkg/decoder"
	"github.com/jittakal/batchetl/pkg/record"
)

// Factory dispatches decoders by file extension.
type Factory struct {
	byExtension map[string]decoder.Decoder
}

// NewFactory creates a factory with all supported decoders registered.
func NewFactory() *Factory {
	return &Factory{
		byExtension: map[string]decoder.Decoder{
			".csv":  NewCSVDecoder(),
			".json": NewJSONDecoder(),
			".xml":  NewXMLDecoder(),
		},
	}
}

// ForFile returns the decoder matching the file's extension. The second
// return value is false for unrecognized extensions; such files are ignored
// by the extractor, not treated as errors.
func (f *Factory) ForFile(path string) (decoder.Decoder, bool) {
	dec, ok := f.byExtension[strings.ToLower(filepath.Ext(path))]
	return dec, ok
}

// SupportedFormats returns the recognized source formats in the order their
// file groups are gathered during extraction.
func SupportedFormats() []record.SourceFormat {
	return []record.SourceFormat{
		record.SourceCSV,
		record.SourceJSON,
		record.SourceXML,
	}
}

// Extension returns the file extension (with dot) for a source format.
func Extension(format record.SourceFormat) string {
	return "." + string(format)
}
