package extract

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/jittakal/batchetl/internal/audit"
	"github.com/jittakal/batchetl/internal/decoder"
	"github.com/jittakal/batchetl/internal/observability"
)

func newTestExtractor(t *testing.T) (*Extractor, string) {
	t.Helper()
	auditPath := filepath.Join(t.TempDir(), "audit.log")
	auditLog, err := audit.Open(auditPath)
	if err != nil {
		t.Fatalf("audit.Open() error = %v", err)
	}
	t.Cleanup(func() { auditLog.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	metrics := observability.NewMetrics(prometheus.NewRegistry())
	return New(decoder.NewFactory(), auditLog, logger, metrics), auditPath
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile(%s) error = %v", name, err)
	}
}

func TestExtractor_Extract(t *testing.T) {
	extractor, _ := newTestExtractor(t)
	inputDir := t.TempDir()

	writeFile(t, inputDir, "a.csv", "name,height,weight\nalice,65,150\nbob,70,180\n")
	writeFile(t, inputDir, "b.json", `[{"name":"carol","height":60,"weight":120}]`)
	writeFile(t, inputDir, "c.xml", "<people><person><name>dave</name><height>72</height></person></people>")
	writeFile(t, inputDir, "notes.txt", "not an input file")

	table, err := extractor.Extract(context.Background(), inputDir)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if len(table) != 4 {
		t.Fatalf("len(table) = %d, want 4", len(table))
	}

	// Groups are gathered csv, then json, then xml.
	names := make([]string, len(table))
	for i, row := range table {
		names[i] = row.Name
	}
	if names[2] != "carol" || names[3] != "dave" {
		t.Errorf("group order wrong: %v", names)
	}
	csvNames := map[string]bool{names[0]: true, names[1]: true}
	if !csvNames["alice"] || !csvNames["bob"] {
		t.Errorf("csv rows = %v, want alice and bob first", names[:2])
	}
}

func TestExtractor_ExtractSkipsMalformedFile(t *testing.T) {
	extractor, auditPath := newTestExtractor(t)
	inputDir := t.TempDir()

	writeFile(t, inputDir, "good.json", `[{"name":"alice","height":65}]`)
	writeFile(t, inputDir, "bad.json", `[{"name":"broken"`)

	table, err := extractor.Extract(context.Background(), inputDir)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if len(table) != 1 {
		t.Fatalf("len(table) = %d, want 1", len(table))
	}
	if table[0].Name != "alice" {
		t.Errorf("Name = %q, want alice", table[0].Name)
	}

	data, err := os.ReadFile(auditPath)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if !strings.Contains(string(data), "skipped file bad.json") {
		t.Errorf("audit log missing skip entry:\n%s", data)
	}
}

func TestExtractor_ExtractEmptyDirectory(t *testing.T) {
	extractor, auditPath := newTestExtractor(t)

	table, err := extractor.Extract(context.Background(), t.TempDir())
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if len(table) != 0 {
		t.Errorf("len(table) = %d, want 0", len(table))
	}

	data, err := os.ReadFile(auditPath)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if !strings.Contains(string(data), "extraction completed, 0 files processed") {
		t.Errorf("audit log missing completion entry:\n%s", data)
	}
}

func TestExtractor_ExtractMissingDirectory(t *testing.T) {
	extractor, _ := newTestExtractor(t)

	if _, err := extractor.Extract(context.Background(), filepath.Join(t.TempDir(), "absent")); err == nil {
		t.Error("expected error for missing input directory")
	}
}

func TestExtractor_ExtractIgnoresSubdirectories(t *testing.T) {
	extractor, _ := newTestExtractor(t)
	inputDir := t.TempDir()

	if err := os.Mkdir(filepath.Join(inputDir, "archive.csv"), 0755); err != nil {
		t.Fatalf("Mkdir() error = %v", err)
	}
	writeFile(t, inputDir, "a.csv", "name,height,weight\nalice,65,150\n")

	table, err := extractor.Extract(context.Background(), inputDir)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if len(table) != 1 {
		t.Errorf("len(table) = %d, want 1", len(table))
	}
}
