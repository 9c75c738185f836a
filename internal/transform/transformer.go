// Package transform implements the standardization stage: unit conversion
// and rounding of the extracted table.
package transform

import (
	"log/slog"
	"math"

	"github.com/jittakal/batchetl/internal/audit"
	"github.com/jittakal/batchetl/pkg/record"
)

// Conversion factors from source units to standardized units.
const (
	inchesToCentimeters = 2.54
	poundsToKilograms   = 0.453592
)

// Transformer converts extracted rows into the canonical table.
type Transformer struct {
	auditLog *audit.Log
	logger   *slog.Logger
}

// New creates a transformer.
func New(auditLog *audit.Log, logger *slog.Logger) *Transformer {
	return &Transformer{auditLog: auditLog, logger: logger}
}

// Apply standardizes every row: height converts from inches to centimeters,
// weight from pounds to kilograms, both rounded to 2 decimal places; name
// passes through unchanged. Absent values stay absent. The output preserves
// input order and the input table is not modified.
//
// Apply must run exactly once per extracted table; re-applying it to already
// canonical data would convert the units a second time.
func (t *Transformer) Apply(rows record.Table) record.Table {
	_ = t.auditLog.Record(audit.PhaseTransform, "transformation started")

	out := make(record.Table, len(rows))
	for i, row := range rows {
		out[i] = record.Row{
			Name:   row.Name,
			Height: convert(row.Height, inchesToCentimeters),
			Weight: convert(row.Weight, poundsToKilograms),
		}
	}

	_ = t.auditLog.Recordf(audit.PhaseTransform, "transformation completed, %d rows", len(out))

	t.logger.Info("transformation finished", "rows", len(out))
	return out
}

func convert(v *float64, factor float64) *float64 {
	if v == nil {
		return nil
	}
	converted := round2(*v * factor)
	return &converted
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
