package encoder

import (
	"testing"

	"github.com/jittakal/batchetl/pkg/record"
)

func TestFactory_CreateEncoder(t *testing.T) {
	tests := []struct {
		name    string
		format  record.FileFormat
		wantErr bool
	}{
		{"csv", record.FormatCSV, false},
		{"parquet", record.FormatParquet, false},
		{"avro", record.FormatAvro, false},
		{"unsupported", record.FileFormat("orc"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			enc, err := NewFactory(tt.format, "").CreateEncoder()
			if (err != nil) != tt.wantErr {
				t.Fatalf("CreateEncoder() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && enc.Format() != tt.format {
				t.Errorf("Format() = %v, want %v", enc.Format(), tt.format)
			}
		})
	}
}

func TestDefaultCompression(t *testing.T) {
	tests := []struct {
		format record.FileFormat
		want   string
	}{
		{record.FormatCSV, "none"},
		{record.FormatParquet, "snappy"},
		{record.FormatAvro, "deflate"},
	}

	for _, tt := range tests {
		if got := DefaultCompression(tt.format); got != tt.want {
			t.Errorf("DefaultCompression(%v) = %q, want %q", tt.format, got, tt.want)
		}
	}
}
