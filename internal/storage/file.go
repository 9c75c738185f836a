// Package storage implements artifact writers for the supported backends.
package storage

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jittakal/batchetl/pkg/storage"
)

// Ensure implementation satisfies interface at compile time.
var _ storage.Writer = (*FileWriter)(nil)

// MetricsCollector defines metrics operations for storage.
type MetricsCollector interface {
	SetArtifactSize(size float64)
	IncStorageErrors(backend string, operation string)
}

// FileWriter implements storage.Writer for the local filesystem. The target
// file is truncated on write: one artifact per run, no append-across-runs.
type FileWriter struct {
	logger  *slog.Logger
	metrics MetricsCollector
}

// NewFileWriter creates a new filesystem artifact writer.
func NewFileWriter(logger *slog.Logger, metrics MetricsCollector) *FileWriter {
	return &FileWriter{
		logger:  logger,
		metrics: metrics,
	}
}

// Write stores the artifact at path, creating parent directories as needed
// and replacing any prior content.
func (w *FileWriter) Write(ctx context.Context, data []byte, path string) (int64, error) {
	startTime := time.Now()

	cleanPath := strings.TrimPrefix(path, "file://")

	if dir := filepath.Dir(cleanPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			if w.metrics != nil {
				w.metrics.IncStorageErrors("file", "mkdir")
			}
			return 0, fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	if err := os.WriteFile(cleanPath, data, 0644); err != nil {
		if w.metrics != nil {
			w.metrics.IncStorageErrors("file", "write")
		}
		return 0, fmt.Errorf("failed to write artifact: %w", err)
	}

	w.logger.Info("wrote artifact to file",
		"path", cleanPath,
		"size_bytes", len(data),
		"total_duration_ms", time.Since(startTime).Milliseconds(),
	)

	if w.metrics != nil {
		w.metrics.SetArtifactSize(float64(len(data)))
	}
	return int64(len(data)), nil
}

// Close closes the writer.
func (w *FileWriter) Close() error {
	return nil
}
