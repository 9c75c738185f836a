package decoder

import (
	"testing"

	"github.com/jittakal/batchetl/pkg/record"
)

func TestFactory_ForFile(t *testing.T) {
	factory := NewFactory()

	tests := []struct {
		name       string
		path       string
		wantFormat record.SourceFormat
		wantOK     bool
	}{
		{"csv file", "data/source1.csv", record.SourceCSV, true},
		{"json file", "data/source2.json", record.SourceJSON, true},
		{"xml file", "data/source3.xml", record.SourceXML, true},
		{"uppercase extension", "data/SOURCE.CSV", record.SourceCSV, true},
		{"unrecognized extension", "data/readme.txt", "", false},
		{"no extension", "data/source", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dec, ok := factory.ForFile(tt.path)
			if ok != tt.wantOK {
				t.Fatalf("ForFile(%q) ok = %v, want %v", tt.path, ok, tt.wantOK)
			}
			if ok && dec.Format() != tt.wantFormat {
				t.Errorf("Format() = %v, want %v", dec.Format(), tt.wantFormat)
			}
		})
	}
}

func TestSupportedFormats(t *testing.T) {
	// Group gather order is part of the extraction ordering contract.
	want := []record.SourceFormat{record.SourceCSV, record.SourceJSON, record.SourceXML}
	got := SupportedFormats()
	if len(got) != len(want) {
		t.Fatalf("len(SupportedFormats()) = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("SupportedFormats()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}
