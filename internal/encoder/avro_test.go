package encoder

import (
	"bytes"
	"testing"

	"github.com/linkedin/goavro/v2"

	"github.com/jittakal/batchetl/pkg/record"
)

func TestAvroEncoder_EncodeRoundTrip(t *testing.T) {
	enc, err := NewAvroEncoder("deflate")
	if err != nil {
		t.Fatalf("NewAvroEncoder() error = %v", err)
	}

	rows := record.Table{
		{Name: "alice", Height: record.Float(165.1), Weight: record.Float(68.04)},
		{Name: "bob", Height: nil, Weight: record.Float(56.7)},
	}

	data, err := enc.Encode(rows)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	reader, err := goavro.NewOCFReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("NewOCFReader() error = %v", err)
	}

	var decoded []map[string]interface{}
	for reader.Scan() {
		datum, err := reader.Read()
		if err != nil {
			t.Fatalf("Read() error = %v", err)
		}
		decoded = append(decoded, datum.(map[string]interface{}))
	}
	if len(decoded) != 2 {
		t.Fatalf("len(decoded) = %d, want 2", len(decoded))
	}

	if decoded[0]["name"] != "alice" {
		t.Errorf("name = %v, want alice", decoded[0]["name"])
	}
	height := decoded[0]["height"].(map[string]interface{})
	if height["double"] != 165.1 {
		t.Errorf("height = %v, want 165.1", height["double"])
	}
	if decoded[1]["height"] != nil {
		t.Errorf("absent height = %v, want nil", decoded[1]["height"])
	}
}

func TestAvroEncoder_EncodeEmptyTable(t *testing.T) {
	enc, err := NewAvroEncoder("")
	if err != nil {
		t.Fatalf("NewAvroEncoder() error = %v", err)
	}

	data, err := enc.Encode(nil)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	reader, err := goavro.NewOCFReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("NewOCFReader() error = %v", err)
	}
	if reader.Scan() {
		t.Error("expected no records in empty artifact")
	}
}

func TestAvroEncoder_UnsupportedCompression(t *testing.T) {
	if _, err := NewAvroEncoder("brotli"); err == nil {
		t.Error("expected error for unsupported compression")
	}
}

func TestAvroEncoder_Metadata(t *testing.T) {
	enc, err := NewAvroEncoder("snappy")
	if err != nil {
		t.Fatalf("NewAvroEncoder() error = %v", err)
	}
	if enc.FileExtension() != ".avro" {
		t.Errorf("FileExtension() = %q, want .avro", enc.FileExtension())
	}
	if enc.Format() != record.FormatAvro {
		t.Errorf("Format() = %v, want %v", enc.Format(), record.FormatAvro)
	}
}
