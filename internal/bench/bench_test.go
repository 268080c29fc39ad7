package bench

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// failAfter succeeds for n samples, then fails.
type failAfter struct {
	n     int
	calls int
}

func (f *failAfter) Measure(v Variant) (float64, error) {
	f.calls++
	if f.calls > f.n {
		return 0, errors.New("sensor offline")
	}
	return 10.0, nil
}

type fixedSource struct{ ms float64 }

func (f fixedSource) Measure(v Variant) (float64, error) { return f.ms, nil }

func TestRun_CollectsBothVariants(t *testing.T) {
	r := &Runner{Source: fixedSource{ms: 12.5}, Runs: 3}
	orig, opt, err := r.Run(
		Variant{Name: "original", Content: "old"},
		Variant{Name: "optimized", Content: "new"},
	)
	if err != nil {
		t.Fatal(err)
	}
	if len(orig.Times) != 3 || len(opt.Times) != 3 {
		t.Errorf("lengths = %d/%d, want 3/3", len(orig.Times), len(opt.Times))
	}
	if orig.Variant != "original" || opt.Variant != "optimized" {
		t.Errorf("variants = %s/%s", orig.Variant, opt.Variant)
	}
}

func TestRun_FailureDiscardsPartialSamples(t *testing.T) {
	r := &Runner{Source: &failAfter{n: 1}, Runs: 3}
	orig, opt, err := r.Run(
		Variant{Name: "original"},
		Variant{Name: "optimized"},
	)
	if !errors.Is(err, ErrAborted) {
		t.Fatalf("err = %v, want ErrAborted", err)
	}
	if len(orig.Times) != 0 || len(opt.Times) != 0 {
		t.Errorf("partial samples leaked: %d/%d, want 0/0", len(orig.Times), len(opt.Times))
	}
}

func TestRun_LiveFileUntouchedOnFailure(t *testing.T) {
	// The variants are in-memory snapshots; even a failing run must leave
	// the tracked file holding the optimized content.
	dir := t.TempDir()
	path := filepath.Join(dir, "a.ts")
	if err := os.WriteFile(path, []byte("optimized"), 0o644); err != nil {
		t.Fatal(err)
	}

	r := &Runner{Source: &failAfter{n: 1}, Runs: 3}
	_, _, err := r.Run(
		Variant{Name: "original", Content: "original"},
		Variant{Name: "optimized", Content: "optimized"},
	)
	if err == nil {
		t.Fatal("want error")
	}

	data, _ := os.ReadFile(path)
	if string(data) != "optimized" {
		t.Errorf("live file = %q, want optimized content preserved", data)
	}
}

func TestRun_RejectsNonPositiveSamples(t *testing.T) {
	r := &Runner{Source: fixedSource{ms: -1}, Runs: 2}
	orig, opt, err := r.Run(Variant{Name: "original"}, Variant{Name: "optimized"})
	if !errors.Is(err, ErrAborted) {
		t.Fatalf("err = %v, want ErrAborted", err)
	}
	if len(orig.Times) != 0 || len(opt.Times) != 0 {
		t.Error("non-positive samples must discard the run")
	}
}

func TestRun_DefaultRuns(t *testing.T) {
	r := &Runner{Source: fixedSource{ms: 5}}
	orig, _, err := r.Run(Variant{Name: "original"}, Variant{Name: "optimized"})
	if err != nil {
		t.Fatal(err)
	}
	if len(orig.Times) != DefaultRuns {
		t.Errorf("len = %d, want DefaultRuns=%d", len(orig.Times), DefaultRuns)
	}
}

func TestSimulatedSource_PositiveFinite(t *testing.T) {
	s := NewSimulatedSource(42)
	for i := 0; i < 200; i++ {
		v := Variant{Name: "original"}
		if i%2 == 1 {
			v = Variant{Name: "optimized"}
		}
		ms, err := s.Measure(v)
		if err != nil {
			t.Fatal(err)
		}
		if ms <= 0 {
			t.Fatalf("sample %d: %v, want positive", i, ms)
		}
	}
}

func TestSimulatedSource_OptimizedFasterOnAverage(t *testing.T) {
	s := NewSimulatedSource(1)
	var origSum, optSum float64
	const n = 500
	for i := 0; i < n; i++ {
		o, _ := s.Measure(Variant{Name: "original"})
		p, _ := s.Measure(Variant{Name: "optimized"})
		origSum += o
		optSum += p
	}
	if optSum >= origSum {
		t.Errorf("optimized mean %.2f >= original mean %.2f", optSum/n, origSum/n)
	}
}
