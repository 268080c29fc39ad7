// Package report reduces two benchmark sample sets and a change summary to
// a single structured result with a human-readable verdict.
package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/google/uuid"

	"perfbot/internal/analyze"
	"perfbot/internal/bench"
)

// ErrInsufficientData indicates an empty sample set reached the builder.
// No partial report is ever produced.
var ErrInsufficientData = errors.New("insufficient benchmark data")

// Verdict bands for the improvement percentage. Regressions land in
// BandMinor together with small gains; known coarse classification.
const (
	BandSignificant = "significant"
	BandModerate    = "moderate"
	BandMinor       = "minor"
)

// VariantStats summarizes one variant's samples.
type VariantStats struct {
	AvgFrameTimeMs float64   `json:"avg_frame_time_ms"`
	EstimatedFPS   float64   `json:"estimated_fps"`
	AllRunsMs      []float64 `json:"all_runs_ms"`
}

// Report is the final structured result of a compare run.
type Report struct {
	RunID          string          `json:"run_id"`
	File           string          `json:"file,omitempty"`
	Model          string          `json:"model,omitempty"`
	Original       VariantStats    `json:"original"`
	Optimized      VariantStats    `json:"optimized"`
	ImprovementPct float64         `json:"improvement_percentage"`
	Verdict        string          `json:"verdict"`
	CodeChanges    *analyze.Report `json:"code_changes,omitempty"`
}

// Build combines a change report and two non-empty sample sets. Throughput
// is derived as 1000/mean (frames per second from a frame time in ms).
func Build(changes analyze.Report, original, optimized bench.SampleSet) (Report, error) {
	if len(original.Times) == 0 || len(optimized.Times) == 0 {
		return Report{}, fmt.Errorf("%w: original=%d optimized=%d samples",
			ErrInsufficientData, len(original.Times), len(optimized.Times))
	}

	origStats := variantStats(original.Times)
	optStats := variantStats(optimized.Times)
	improvement := (origStats.AvgFrameTimeMs - optStats.AvgFrameTimeMs) / origStats.AvgFrameTimeMs * 100

	return Report{
		RunID:          uuid.New().String(),
		Original:       origStats,
		Optimized:      optStats,
		ImprovementPct: improvement,
		Verdict:        Band(improvement),
		CodeChanges:    &changes,
	}, nil
}

// Band classifies an improvement percentage.
func Band(improvementPct float64) string {
	switch {
	case improvementPct > 15:
		return BandSignificant
	case improvementPct > 5:
		return BandModerate
	default:
		return BandMinor
	}
}

// Summary returns a short operator-facing verdict.
func (r Report) Summary() string {
	return fmt.Sprintf("Original: %.2fms per frame (%.1f FPS)\nOptimized: %.2fms per frame (%.1f FPS)\nImprovement: %.1f%% (%s)",
		r.Original.AvgFrameTimeMs, r.Original.EstimatedFPS,
		r.Optimized.AvgFrameTimeMs, r.Optimized.EstimatedFPS,
		r.ImprovementPct, r.Verdict)
}

// WriteJSON persists the report to path as indented JSON.
func (r Report) WriteJSON(path string) error {
	b, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(b, '\n'), 0o644)
}

func variantStats(times []float64) VariantStats {
	mean := mean(times)
	return VariantStats{
		AvgFrameTimeMs: mean,
		EstimatedFPS:   1000 / mean,
		AllRunsMs:      times,
	}
}

func mean(xs []float64) float64 {
	sum := 0.0
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}
