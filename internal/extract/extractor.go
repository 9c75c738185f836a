// Package extract implements the discovery and extraction stage of the
// pipeline: directory scan, concurrent file reads, decoder dispatch, and
// aggregation into a single table.
package extract

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/jittakal/batchetl/internal/audit"
	"github.com/jittakal/batchetl/internal/decoder"
	apperrors "github.com/jittakal/batchetl/internal/errors"
	"github.com/jittakal/batchetl/internal/observability"
	"github.com/jittakal/batchetl/pkg/record"
)

// Extractor discovers input files, reads them concurrently, and aggregates
// their decoded records into one table.
type Extractor struct {
	decoders *decoder.Factory
	auditLog *audit.Log
	logger   *slog.Logger
	metrics  *observability.Metrics
}

// New creates an extractor.
func New(
	decoders *decoder.Factory,
	auditLog *audit.Log,
	logger *slog.Logger,
	metrics *observability.Metrics,
) *Extractor {
	return &Extractor{
		decoders: decoders,
		auditLog: auditLog,
		logger:   logger,
		metrics:  metrics,
	}
}

// Extract scans inputDir, partitions files by extension into format groups,
// and decodes every recognized file into the returned table. Files with
// unrecognized extensions are ignored.
//
// Reads within one format group run concurrently, one goroutine per file with
// no cap, and rows land in completion order; groups are gathered one after
// another in the fixed order csv, json, xml. Cross-group row ordering is
// therefore deterministic while within-group ordering is not stable across
// runs.
//
// A single file's read or decode failure skips that file's contribution,
// leaves an audit line, and never aborts the extraction. Only an unreadable
// input directory is an error.
func (e *Extractor) Extract(ctx context.Context, inputDir string) (record.Table, error) {
	entries, err := os.ReadDir(inputDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read input directory: %w", err)
	}

	groups := e.partition(inputDir, entries)

	_ = e.auditLog.Record(audit.PhaseExtract, "extraction started")

	var table record.Table
	fileCount := 0
	for _, format := range decoder.SupportedFormats() {
		files := groups[format]
		fileCount += len(files)
		e.metrics.AddFilesDiscovered(string(format), float64(len(files)))
		table = append(table, e.extractGroup(ctx, format, files)...)
	}

	_ = e.auditLog.Recordf(audit.PhaseExtract, "extraction completed, %d files processed", fileCount)

	e.logger.Info("extraction finished",
		"input_dir", inputDir,
		"files", fileCount,
		"rows", len(table),
	)
	return table, nil
}

// partition groups the directory's files by recognized extension. Order
// within a group follows directory listing order; unrecognized extensions
// and subdirectories are dropped.
func (e *Extractor) partition(inputDir string, entries []os.DirEntry) map[record.SourceFormat][]string {
	groups := make(map[record.SourceFormat][]string)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		path := filepath.Join(inputDir, entry.Name())
		dec, ok := e.decoders.ForFile(path)
		if !ok {
			e.logger.Debug("ignoring file with unrecognized extension",
				"file", entry.Name(),
				"extension", strings.ToLower(filepath.Ext(entry.Name())),
			)
			continue
		}
		format := dec.Format()
		groups[format] = append(groups[format], path)
	}
	return groups
}

// extractGroup reads and decodes one format group. All files are read
// concurrently; each file's rows are appended as its goroutine completes,
// and the group is fully gathered before the caller moves on.
func (e *Extractor) extractGroup(ctx context.Context, format record.SourceFormat, paths []string) record.Table {
	if len(paths) == 0 {
		return nil
	}

	dec, _ := e.decoders.ForFile(paths[0])

	rowsCh := make(chan record.Table)
	g, gctx := errgroup.WithContext(ctx)
	for _, path := range paths {
		g.Go(func() error {
			data, err := os.ReadFile(path)
			if err != nil {
				e.skip(format, path, err)
				return nil
			}

			raws, err := dec.Decode(data)
			if err != nil {
				e.skip(format, path, &apperrors.DecodeError{Path: path, Format: format, Err: err})
				return nil
			}

			rows := record.FromRawAll(raws)
			e.metrics.IncFilesProcessed(string(format), "success")
			e.metrics.AddRowsExtracted(string(format), float64(len(rows)))

			select {
			case rowsCh <- rows:
			case <-gctx.Done():
			}
			return nil
		})
	}
	go func() {
		_ = g.Wait()
		close(rowsCh)
	}()

	var rows record.Table
	for batch := range rowsCh {
		rows = append(rows, batch...)
	}
	return rows
}

// skip records a per-file failure and drops that file's contribution.
func (e *Extractor) skip(format record.SourceFormat, path string, err error) {
	e.metrics.IncFilesProcessed(string(format), "skipped")
	_ = e.auditLog.Recordf(audit.PhaseExtract, "skipped file %s: %v", filepath.Base(path), err)
	e.logger.Warn("skipping file",
		"file", path,
		"format", format,
		"error", err,
	)
}
