package observability

import (
	"fmt"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/common/expfmt"
)

// Metrics holds all Prometheus metrics for a pipeline run.
type Metrics struct {
	// Extraction metrics
	FilesDiscovered *prometheus.CounterVec
	FilesProcessed  *prometheus.CounterVec
	RowsExtracted   *prometheus.CounterVec

	// Pipeline metrics
	PhaseDuration *prometheus.HistogramVec
	RowsLoaded    prometheus.Counter

	// Storage metrics
	ArtifactSizeBytes prometheus.Gauge
	StorageErrors     *prometheus.CounterVec
}

// NewMetrics creates and registers all Prometheus metrics.
func NewMetrics(registry *prometheus.Registry) *Metrics {
	factory := promauto.With(registry)

	return &Metrics{
		FilesDiscovered: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "etl_files_discovered_total",
				Help: "Total number of input files discovered, by source format",
			},
			[]string{"format"},
		),
		FilesProcessed: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "etl_files_processed_total",
				Help: "Total number of input files processed, by source format and status",
			},
			[]string{"format", "status"},
		),
		RowsExtracted: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "etl_rows_extracted_total",
				Help: "Total number of rows decoded from input files, by source format",
			},
			[]string{"format"},
		),
		PhaseDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "etl_phase_duration_seconds",
				Help:    "Duration of pipeline phases",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"phase"},
		),
		RowsLoaded: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "etl_rows_loaded_total",
				Help: "Total number of rows written to the output artifact",
			},
		),
		ArtifactSizeBytes: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "etl_artifact_size_bytes",
				Help: "Size of the output artifact in bytes",
			},
		),
		StorageErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "etl_storage_errors_total",
				Help: "Total number of storage operation failures, by backend and operation",
			},
			[]string{"backend", "operation"},
		),
	}
}

// AddFilesDiscovered records discovered input files for a source format.
func (m *Metrics) AddFilesDiscovered(format string, count float64) {
	m.FilesDiscovered.WithLabelValues(format).Add(count)
}

// IncFilesProcessed records one processed input file.
func (m *Metrics) IncFilesProcessed(format string, status string) {
	m.FilesProcessed.WithLabelValues(format, status).Inc()
}

// AddRowsExtracted records decoded rows for a source format.
func (m *Metrics) AddRowsExtracted(format string, count float64) {
	m.RowsExtracted.WithLabelValues(format).Add(count)
}

// ObservePhaseDuration records the duration of one pipeline phase.
func (m *Metrics) ObservePhaseDuration(phase string, seconds float64) {
	m.PhaseDuration.WithLabelValues(phase).Observe(seconds)
}

// AddRowsLoaded records rows written to the output artifact.
func (m *Metrics) AddRowsLoaded(count float64) {
	m.RowsLoaded.Add(count)
}

// SetArtifactSize records the output artifact size.
func (m *Metrics) SetArtifactSize(size float64) {
	m.ArtifactSizeBytes.Set(size)
}

// IncStorageErrors records a storage operation failure.
func (m *Metrics) IncStorageErrors(backend string, operation string) {
	m.StorageErrors.WithLabelValues(backend, operation).Inc()
}

// WriteSnapshot renders the registry's current state in the Prometheus text
// exposition format. A batch run has no scrape window, so the snapshot is
// written once at the end of the run.
func WriteSnapshot(registry *prometheus.Registry, w io.Writer) error {
	families, err := registry.Gather()
	if err != nil {
		return fmt.Errorf("failed to gather metrics: %w", err)
	}

	enc := expfmt.NewEncoder(w, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, family := range families {
		if err := enc.Encode(family); err != nil {
			return fmt.Errorf("failed to encode metric family %q: %w", family.GetName(), err)
		}
	}
	return nil
}
