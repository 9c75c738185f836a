package decoder

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/jittakal/batchetl/pkg/decoder"
	"github.com/jittakal/batchetl/pkg/record"
)

// Ensure implementation satisfies interface at compile time.
var _ decoder.Decoder = (*XMLDecoder)(nil)

// XMLDecoder decodes tree-markup payloads: a root element containing one
// repeated element per record, whose child elements carry the field values.
type XMLDecoder struct{}

// NewXMLDecoder creates a new XML decoder.
func NewXMLDecoder() *XMLDecoder {
	return &XMLDecoder{}
}

// Decode decodes the payload into raw records, one per depth-1 element. The
// repeated element's tag name is not interpreted; fields come from the tag
// names of its direct children. Elements nested deeper than the field level
// are ignored.
func (d *XMLDecoder) Decode(data []byte) ([]record.RawRecord, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))

	var (
		records []record.RawRecord
		current record.RawRecord
		field   string
		text    strings.Builder
		depth   int
	)

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse xml: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			depth++
			switch depth {
			case 2:
				current = make(record.RawRecord)
			case 3:
				field = t.Name.Local
				text.Reset()
			}
		case xml.CharData:
			if depth == 3 {
				text.Write(t)
			}
		case xml.EndElement:
			switch depth {
			case 3:
				if current != nil {
					current[field] = strings.TrimSpace(text.String())
				}
			case 2:
				if current != nil {
					records = append(records, current)
					current = nil
				}
			}
			depth--
		}
	}

	return records, nil
}

// Format returns the source format this decoder handles.
func (d *XMLDecoder) Format() record.SourceFormat {
	return record.SourceXML
}
