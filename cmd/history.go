package cmd

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"perfbot/internal/format"
	"perfbot/internal/history"
)

// RunHistory handles the history subcommand: list past compare runs with
// aggregate statistics.
func RunHistory(args []string) {
	fs := flag.NewFlagSet("perfbot history", flag.ExitOnError)
	jsonOutput := fs.Bool("json", false, "Output results as JSON")
	limit := fs.Int("limit", 10, "Number of runs to show")
	fs.Parse(args)

	paths := mustPaths()
	if _, err := os.Stat(paths.HistoryDB); err != nil {
		fmt.Fprintln(os.Stderr, "No history yet. Run 'perfbot compare' first.")
		os.Exit(1)
	}

	db, err := history.Open(paths.HistoryDB)
	if err != nil {
		fatalf("opening history: %v", err)
	}
	defer db.Close()

	runs, err := history.Recent(db, *limit)
	if err != nil {
		fatalf("querying history: %v", err)
	}
	stats, err := history.Summarize(db)
	if err != nil {
		fatalf("querying history: %v", err)
	}

	if *jsonOutput {
		runsJSON := make([]map[string]interface{}, len(runs))
		for i, r := range runs {
			runsJSON[i] = map[string]interface{}{
				"run_id":          r.RunID,
				"ts":              r.Ts,
				"file":            r.File,
				"model":           r.Model,
				"improvement_pct": r.ImprovementPct,
				"verdict":         r.Verdict,
			}
		}
		b, _ := json.MarshalIndent(map[string]interface{}{
			"total_runs":    stats.TotalRuns,
			"files_touched": stats.FilesTouched,
			"best_pct":      stats.BestPct,
			"avg_pct":       stats.AvgPct,
			"first_run":     stats.FirstRun,
			"last_run":      stats.LastRun,
			"recent":        runsJSON,
		}, "", "  ")
		fmt.Println(string(b))
		return
	}

	fmt.Printf("%sperfbot history%s\n\n", format.Bold, format.Reset)
	fmt.Printf("  Total runs:     %d\n", stats.TotalRuns)
	fmt.Printf("  Files touched:  %d\n", stats.FilesTouched)
	fmt.Printf("  Best:           %.1f%%\n", stats.BestPct)
	fmt.Printf("  Average:        %.1f%%\n", stats.AvgPct)

	if len(runs) > 0 {
		fmt.Printf("\n  %sRecent runs:%s\n", format.Bold, format.Reset)
		for _, r := range runs {
			fmt.Printf("    %s  %-30s %6.1f%%  %s\n", r.Ts, r.File, r.ImprovementPct, r.Verdict)
		}
	}
}
