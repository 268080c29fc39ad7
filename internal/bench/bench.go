// Package bench collects paired timing samples for the original and
// optimized variants of the tracked file. The two variants are immutable
// in-memory snapshots; the active variant is a parameter to the measurement
// source, never a side effect on disk, so a failed run can never leave the
// live file in the wrong state.
package bench

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// DefaultRuns is the number of timing samples collected per variant.
const DefaultRuns = 5

// ErrAborted indicates a benchmark run produced no usable measurements.
var ErrAborted = errors.New("benchmark aborted")

// Variant is an immutable content snapshot of the tracked file.
type Variant struct {
	Name    string // "original" or "optimized"
	Content string
}

// Original reports whether this is the pre-optimization variant.
func (v Variant) Original() bool {
	return v.Name == "original"
}

// SampleSet is an ordered sequence of positive frame times in milliseconds
// for one variant. An aborted run yields an empty set, never a partial one.
type SampleSet struct {
	Variant string    `json:"variant"`
	Times   []float64 `json:"all_runs_ms"`
}

// Source produces one latency sample in milliseconds for a variant. It must
// return a finite positive number and be callable once per run without
// shared mutable state across calls.
type Source interface {
	Measure(v Variant) (float64, error)
}

// Runner collects repeated timing samples for two variants.
type Runner struct {
	Source    Source
	Runs      int           // samples per variant; DefaultRuns when zero
	Pause     time.Duration // pause between samples to avoid saturating shared resources
	Progressf func(format string, args ...interface{})
}

func (r *Runner) progressf(format string, args ...interface{}) {
	if r.Progressf != nil {
		r.Progressf(format, args...)
	}
}

// Run measures both variants, original first, and returns the two sample
// sets. Any failure discards all samples: both returned sets are empty and
// the error explains the abort. Partial data never reaches callers.
func (r *Runner) Run(original, optimized Variant) (SampleSet, SampleSet, error) {
	runs := r.Runs
	if runs <= 0 {
		runs = DefaultRuns
	}

	origSet, err := r.collect(original, runs)
	if err != nil {
		return emptyPair(original, optimized, err)
	}
	optSet, err := r.collect(optimized, runs)
	if err != nil {
		return emptyPair(original, optimized, err)
	}
	return origSet, optSet, nil
}

func (r *Runner) collect(v Variant, runs int) (SampleSet, error) {
	set := SampleSet{Variant: v.Name}
	for i := 0; i < runs; i++ {
		r.progressf("  Run %d/%d (%s)", i+1, runs, v.Name)
		ms, err := r.Source.Measure(v)
		if err != nil {
			return SampleSet{Variant: v.Name}, fmt.Errorf("%w: sample %d (%s): %v", ErrAborted, i+1, v.Name, err)
		}
		if math.IsNaN(ms) || math.IsInf(ms, 0) || ms <= 0 {
			return SampleSet{Variant: v.Name}, fmt.Errorf("%w: sample %d (%s): non-positive measurement %v", ErrAborted, i+1, v.Name, ms)
		}
		set.Times = append(set.Times, ms)
		if r.Pause > 0 && i < runs-1 {
			time.Sleep(r.Pause)
		}
	}
	return set, nil
}

func emptyPair(original, optimized Variant, err error) (SampleSet, SampleSet, error) {
	return SampleSet{Variant: original.Name}, SampleSet{Variant: optimized.Name}, err
}
