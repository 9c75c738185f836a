package decoder

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"unicode"

	"github.com/jittakal/batchetl/pkg/decoder"
	"github.com/jittakal/batchetl/pkg/record"
)

// Ensure implementation satisfies interface at compile time.
var _ decoder.Decoder = (*JSONDecoder)(nil)

// JSONDecoder decodes structured-object payloads. Both layouts seen in the
// field are accepted: a single object array, and JSON Lines with one object
// per line.
type JSONDecoder struct{}

// NewJSONDecoder creates a new JSON decoder.
func NewJSONDecoder() *JSONDecoder {
	return &JSONDecoder{}
}

// Decode decodes the payload into raw records, one per object.
func (d *JSONDecoder) Decode(data []byte) ([]record.RawRecord, error) {
	trimmed := bytes.TrimLeftFunc(data, unicode.IsSpace)
	if len(trimmed) == 0 {
		return nil, nil
	}

	var objects []map[string]any
	if trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, &objects); err != nil {
			return nil, fmt.Errorf("failed to decode json array: %w", err)
		}
	} else {
		dec := json.NewDecoder(bytes.NewReader(trimmed))
		for dec.More() {
			var obj map[string]any
			if err := dec.Decode(&obj); err != nil {
				return nil, fmt.Errorf("failed to decode json object stream: %w", err)
			}
			objects = append(objects, obj)
		}
	}

	records := make([]record.RawRecord, 0, len(objects))
	for _, obj := range objects {
		records = append(records, rawFromObject(obj))
	}
	return records, nil
}

// Format returns the source format this decoder handles.
func (d *JSONDecoder) Format() record.SourceFormat {
	return record.SourceJSON
}

// rawFromObject flattens a decoded object into a raw record. Only scalar
// values have a representation; null and nested values leave the field absent.
func rawFromObject(obj map[string]any) record.RawRecord {
	raw := make(record.RawRecord, len(obj))
	for key, value := range obj {
		switch v := value.(type) {
		case string:
			raw[key] = v
		case float64:
			raw[key] = strconv.FormatFloat(v, 'f', -1, 64)
		case bool:
			raw[key] = strconv.FormatBool(v)
		}
	}
	return raw
}
