package cmd

import (
	"flag"
	"fmt"
	"os"
	"time"

	"perfbot/internal/analyze"
	"perfbot/internal/backup"
	"perfbot/internal/bench"
	"perfbot/internal/debug"
	"perfbot/internal/format"
	"perfbot/internal/history"
	"perfbot/internal/llm"
	"perfbot/internal/report"
)

// RunCompare handles the compare subcommand: quantify the rewrite's diff,
// benchmark both variants, and report.
func RunCompare(args []string) {
	fs := flag.NewFlagSet("perfbot compare", flag.ExitOnError)
	runs := fs.Int("runs", bench.DefaultRuns, "Benchmark runs per variant")
	showDiff := fs.Bool("diff", false, "Show a side-by-side diff of the changes")
	fs.Parse(args)

	file := fs.Arg(0)
	if file == "" {
		fmt.Fprintln(os.Stderr, "Usage: perfbot compare [--runs N] [--diff] <file>")
		os.Exit(1)
	}

	paths := mustPaths()
	abs := paths.Resolve(file)

	store := backup.NewStore()
	if !store.Track(abs) {
		fatalf("no backup found for %s; run 'perfbot optimize' first", file)
	}

	original, err := store.Original(abs)
	if err != nil {
		fatalf("reading backup: %v", err)
	}
	optimized, err := store.Contents(abs)
	if err != nil {
		fatalf("reading %s: %v", file, err)
	}

	fmt.Printf("%s--- Analyzing code changes ---%s\n", format.Bold, format.Reset)
	changes := analyze.Analyze(original, optimized)
	fmt.Printf("  Lines added:    %d\n", changes.Additions)
	fmt.Printf("  Lines removed:  %d\n", changes.Deletions)
	fmt.Printf("  Chunks changed: %d\n", changes.Hunks)
	if len(changes.Annotations) > 0 {
		fmt.Printf("\n  %sOptimization notes:%s\n", format.Bold, format.Reset)
		for i, note := range changes.Annotations {
			fmt.Printf("  %d. %s\n", i+1, note)
		}
	}
	if *showDiff {
		fmt.Println()
		fmt.Println(format.FormatSideBySideDiff(original, optimized))
	}

	fmt.Printf("\n%s--- Measuring performance ---%s\n", format.Bold, format.Reset)
	runner := &bench.Runner{
		Source: bench.NewSimulatedSource(time.Now().UnixNano()),
		Runs:   *runs,
		Pause:  100 * time.Millisecond,
		Progressf: func(f string, a ...interface{}) {
			fmt.Printf("%s\r", fmt.Sprintf(f, a...))
		},
	}
	origSamples, optSamples, err := runner.Run(
		bench.Variant{Name: "original", Content: original},
		bench.Variant{Name: "optimized", Content: optimized},
	)
	fmt.Println()
	if err != nil {
		fatalf("benchmark failed: %v", err)
	}

	rep, err := report.Build(changes, origSamples, optSamples)
	if err != nil {
		fatalf("building report: %v", err)
	}
	rep.File = paths.Relativize(abs)
	rep.Model = llm.NewClient("", "").Model()

	fmt.Printf("\n%s=== Performance Summary ===%s\n", format.Bold, format.Reset)
	fmt.Println(format.FormatBars(
		[]string{"Original", "Optimized"},
		[]float64{rep.Original.AvgFrameTimeMs, rep.Optimized.AvgFrameTimeMs},
		"ms"))
	fmt.Println()
	fmt.Println(format.FormatBorderedText(rep.Summary(), "Verdict"))

	persist(paths.Results, paths.Chart, rep)
	recordRun(paths.HistoryDB, rep)

	debug.Log(paths.LogDir, "compare.log", "compare complete", rep)
}

func persist(resultsPath, chartPath string, rep report.Report) {
	if err := rep.WriteJSON(resultsPath); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not write results: %v\n", err)
	} else {
		fmt.Printf("\nResults saved to %s\n", resultsPath)
	}
	if err := rep.WriteChart(chartPath); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not write chart: %v\n", err)
	} else {
		fmt.Printf("Chart saved to %s\n", chartPath)
	}
}

func recordRun(dbPath string, rep report.Report) {
	db, err := history.Open(dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open history: %v\n", err)
		return
	}
	defer db.Close()

	run := history.Run{
		RunID:           rep.RunID,
		File:            rep.File,
		Model:           rep.Model,
		MeanOriginalMs:  rep.Original.AvgFrameTimeMs,
		MeanOptimizedMs: rep.Optimized.AvgFrameTimeMs,
		ImprovementPct:  rep.ImprovementPct,
		Verdict:         rep.Verdict,
	}
	if rep.CodeChanges != nil {
		run.Additions = rep.CodeChanges.Additions
		run.Deletions = rep.CodeChanges.Deletions
		run.Hunks = rep.CodeChanges.Hunks
		run.Annotations = len(rep.CodeChanges.Annotations)
	}
	if err := history.Insert(db, run); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not record run: %v\n", err)
	}
}
