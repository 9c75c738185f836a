// Package pipeline sequences the three stages of a run: Extract, Transform,
// Load.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jittakal/batchetl/internal/extract"
	"github.com/jittakal/batchetl/internal/load"
	"github.com/jittakal/batchetl/internal/observability"
	"github.com/jittakal/batchetl/internal/transform"
)

// Pipeline runs the batch consolidation job. Control flow is strictly
// linear; only file reads inside the extractor overlap.
type Pipeline struct {
	extractor   *extract.Extractor
	transformer *transform.Transformer
	loader      *load.Loader
	logger      *slog.Logger
	metrics     *observability.Metrics
}

// New creates a pipeline from its three stages.
func New(
	extractor *extract.Extractor,
	transformer *transform.Transformer,
	loader *load.Loader,
	logger *slog.Logger,
	metrics *observability.Metrics,
) *Pipeline {
	return &Pipeline{
		extractor:   extractor,
		transformer: transformer,
		loader:      loader,
		logger:      logger,
		metrics:     metrics,
	}
}

// Run executes one full Extract -> Transform -> Load pass over inputDir and
// returns the number of rows written to outputPath. Per-file extraction
// failures are tolerated; a load failure aborts the run and is the only
// error a completed extraction can surface.
func (p *Pipeline) Run(ctx context.Context, inputDir string, outputPath string) (int, error) {
	runStart := time.Now()

	phaseStart := time.Now()
	rows, err := p.extractor.Extract(ctx, inputDir)
	if err != nil {
		return 0, fmt.Errorf("extract phase failed: %w", err)
	}
	p.metrics.ObservePhaseDuration("extract", time.Since(phaseStart).Seconds())

	phaseStart = time.Now()
	canonical := p.transformer.Apply(rows)
	p.metrics.ObservePhaseDuration("transform", time.Since(phaseStart).Seconds())

	phaseStart = time.Now()
	if err := p.loader.Load(ctx, canonical, outputPath); err != nil {
		return 0, fmt.Errorf("load phase failed: %w", err)
	}
	p.metrics.ObservePhaseDuration("load", time.Since(phaseStart).Seconds())

	p.logger.Info("pipeline run complete",
		"rows", len(canonical),
		"duration_ms", time.Since(runStart).Milliseconds(),
	)
	return len(canonical), nil
}
