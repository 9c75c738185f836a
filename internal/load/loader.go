// Package load implements the final pipeline stage: serializing the
// canonical table and placing the artifact at the output path.
package load

import (
	"context"
	"log/slog"

	"github.com/jittakal/batchetl/internal/audit"
	apperrors "github.com/jittakal/batchetl/internal/errors"
	"github.com/jittakal/batchetl/internal/observability"
	"github.com/jittakal/batchetl/pkg/encoder"
	"github.com/jittakal/batchetl/pkg/record"
	"github.com/jittakal/batchetl/pkg/storage"
)

// Loader serializes the canonical table and hands the artifact to a storage
// writer. Unlike extraction, a load failure is fatal to the run.
type Loader struct {
	encoder  encoder.Encoder
	writer   storage.Writer
	backend  string
	auditLog *audit.Log
	logger   *slog.Logger
	metrics  *observability.Metrics
}

// New creates a loader. backend names the storage backend for error
// reporting.
func New(
	enc encoder.Encoder,
	writer storage.Writer,
	backend string,
	auditLog *audit.Log,
	logger *slog.Logger,
	metrics *observability.Metrics,
) *Loader {
	return &Loader{
		encoder:  enc,
		writer:   writer,
		backend:  backend,
		auditLog: auditLog,
		logger:   logger,
		metrics:  metrics,
	}
}

// Load encodes rows and writes the artifact to outputPath, replacing any
// prior content at that path.
func (l *Loader) Load(ctx context.Context, rows record.Table, outputPath string) error {
	_ = l.auditLog.Record(audit.PhaseLoad, "load started")

	data, err := l.encoder.Encode(rows)
	if err != nil {
		_ = l.auditLog.Recordf(audit.PhaseLoad, "load failed: %v", err)
		return &apperrors.LoadError{Backend: l.backend, Path: outputPath, Err: err}
	}

	bytesWritten, err := l.writer.Write(ctx, data, outputPath)
	if err != nil {
		_ = l.auditLog.Recordf(audit.PhaseLoad, "load failed: %v", err)
		return &apperrors.LoadError{Backend: l.backend, Path: outputPath, Err: err}
	}

	_ = l.auditLog.Recordf(audit.PhaseLoad, "load completed, %d rows written", len(rows))

	l.metrics.AddRowsLoaded(float64(len(rows)))
	l.logger.Info("load finished",
		"output_path", outputPath,
		"backend", l.backend,
		"format", l.encoder.Format(),
		"rows", len(rows),
		"bytes", bytesWritten,
	)
	return nil
}
