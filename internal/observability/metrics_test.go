package observability

import (
	"bytes"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

func TestWriteSnapshot(t *testing.T) {
	registry := prometheus.NewRegistry()
	metrics := NewMetrics(registry)

	metrics.AddFilesDiscovered("csv", 3)
	metrics.IncFilesProcessed("csv", "success")
	metrics.AddRowsExtracted("csv", 42)
	metrics.ObservePhaseDuration("extract", 0.1)
	metrics.AddRowsLoaded(42)
	metrics.SetArtifactSize(1024)
	metrics.IncStorageErrors("file", "write")

	var buf bytes.Buffer
	if err := WriteSnapshot(registry, &buf); err != nil {
		t.Fatalf("WriteSnapshot() error = %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		`etl_files_discovered_total{format="csv"} 3`,
		`etl_files_processed_total{format="csv",status="success"} 1`,
		`etl_rows_extracted_total{format="csv"} 42`,
		"etl_phase_duration_seconds",
		"etl_rows_loaded_total 42",
		"etl_artifact_size_bytes 1024",
		`etl_storage_errors_total{backend="file",operation="write"} 1`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("snapshot missing %q:\n%s", want, out)
		}
	}
}

func TestWriteSnapshot_EmptyRegistry(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteSnapshot(prometheus.NewRegistry(), &buf); err != nil {
		t.Fatalf("WriteSnapshot() error = %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("expected empty snapshot, got %q", buf.String())
	}
}
