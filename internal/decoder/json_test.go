package decoder

import (
	"testing"

	"github.com/jittakal/batchetl/pkg/record"
)

func TestJSONDecoder_DecodeArray(t *testing.T) {
	dec := NewJSONDecoder()

	data := []byte(`[{"name":"alice","height":65.5,"weight":150},{"name":"bob","height":70}]`)
	records, err := dec.Decode(data)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("len(records) = %d, want 2", len(records))
	}
	if records[0]["name"] != "alice" {
		t.Errorf("name = %q, want alice", records[0]["name"])
	}
	if records[0]["height"] != "65.5" {
		t.Errorf("height = %q, want 65.5", records[0]["height"])
	}
	if _, ok := records[1]["weight"]; ok {
		t.Errorf("missing weight should be absent, got %q", records[1]["weight"])
	}
}

func TestJSONDecoder_DecodeLines(t *testing.T) {
	dec := NewJSONDecoder()

	data := []byte(`{"name":"alice","height":65,"weight":150}
{"name":"bob","height":70,"weight":180}
`)
	records, err := dec.Decode(data)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("len(records) = %d, want 2", len(records))
	}
	if records[1]["name"] != "bob" {
		t.Errorf("name = %q, want bob", records[1]["name"])
	}
}

func TestJSONDecoder_DecodeScalars(t *testing.T) {
	dec := NewJSONDecoder()

	// Null and nested values have no scalar representation and stay absent.
	data := []byte(`[{"name":"alice","height":null,"tags":["a"],"active":true}]`)
	records, err := dec.Decode(data)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("len(records) = %d, want 1", len(records))
	}
	if _, ok := records[0]["height"]; ok {
		t.Error("null height should be absent")
	}
	if _, ok := records[0]["tags"]; ok {
		t.Error("nested tags should be absent")
	}
	if records[0]["active"] != "true" {
		t.Errorf("active = %q, want true", records[0]["active"])
	}
}

func TestJSONDecoder_DecodeEmpty(t *testing.T) {
	dec := NewJSONDecoder()

	records, err := dec.Decode([]byte("  \n"))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if len(records) != 0 {
		t.Errorf("len(records) = %d, want 0", len(records))
	}
}

func TestJSONDecoder_DecodeMalformed(t *testing.T) {
	dec := NewJSONDecoder()

	if _, err := dec.Decode([]byte(`[{"name":"alice"`)); err == nil {
		t.Error("expected error for truncated json array")
	}
	if _, err := dec.Decode([]byte(`{"name":`)); err == nil {
		t.Error("expected error for truncated json object")
	}
}

func TestJSONDecoder_Format(t *testing.T) {
	if got := NewJSONDecoder().Format(); got != record.SourceJSON {
		t.Errorf("Format() = %v, want %v", got, record.SourceJSON)
	}
}
