package cmd

import (
	"fmt"
	"os"

	"perfbot/internal/project"
)

// Usage prints top-level usage to stderr.
func Usage() {
	fmt.Fprintf(os.Stderr, `perfbot: try an AI-suggested optimization, verify safely, measure its effect.

Usage:
    perfbot optimize [<file>]       # identify the hottest file (unless given) and rewrite it
    perfbot compare <file>          # diff + benchmark original vs optimized, report
    perfbot revert <file>           # restore the pre-optimization content from backup
    perfbot history [--json]        # past compare runs
    perfbot --version

Flags for optimize:
    --model <name>        generation model (or PERFBOT_MODEL)
    --endpoint <url>      generation endpoint (or PERFBOT_ENDPOINT)
    --fallbacks <list>    comma-separated fallback paths for identification

Flags for compare:
    --runs <n>            benchmark runs per variant (default 5)
    --diff                show a side-by-side diff of the changes
`)
}

// mustPaths resolves the project root or exits.
func mustPaths() project.Paths {
	root, err := project.FindRoot()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
	return project.NewPaths(root)
}

func fatalf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
