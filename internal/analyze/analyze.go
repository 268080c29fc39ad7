// Package analyze quantifies what a rewrite actually changed: a line-based
// diff summary plus the optimizer's own annotation lines.
package analyze

import (
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// Marker is the literal substring the rewrite prompt instructs the model to
// include on comment lines describing its changes.
const Marker = "PERF OPTIMIZED"

// contextLines matches the unified-diff default; change regions separated
// by more than twice this many unchanged lines fall into separate hunks.
const contextLines = 3

// Report summarizes the difference between two versions of a file.
// Immutable once built.
type Report struct {
	Additions   int      `json:"additions"`
	Deletions   int      `json:"deletions"`
	Hunks       int      `json:"hunks"`
	Annotations []string `json:"annotations,omitempty"`
}

// Analyze computes a line-based diff between originalText and newText and
// collects annotation lines from the new content, in file order. Pure and
// deterministic.
func Analyze(originalText, newText string) Report {
	r := Report{Annotations: findAnnotations(newText)}

	if originalText == newText {
		return r
	}

	dmp := diffmatchpatch.New()
	a, b, lineArray := dmp.DiffLinesToChars(originalText, newText)
	diffs := dmp.DiffMain(a, b, false)
	diffs = dmp.DiffCharsToLines(diffs, lineArray)

	// Walk the line ops counting additions and deletions, and group change
	// regions into hunks the way a unified diff would: an unchanged run
	// longer than 2*contextLines starts a new hunk.
	inHunk := false
	for _, d := range diffs {
		n := countLines(d.Text)
		switch d.Type {
		case diffmatchpatch.DiffEqual:
			if n > 2*contextLines {
				inHunk = false
			}
		case diffmatchpatch.DiffDelete:
			r.Deletions += n
			if !inHunk {
				r.Hunks++
				inHunk = true
			}
		case diffmatchpatch.DiffInsert:
			r.Additions += n
			if !inHunk {
				r.Hunks++
				inHunk = true
			}
		}
	}
	return r
}

func findAnnotations(text string) []string {
	var notes []string
	for _, line := range strings.Split(text, "\n") {
		if strings.Contains(line, Marker) {
			notes = append(notes, strings.TrimSpace(line))
		}
	}
	return notes
}

func countLines(s string) int {
	if s == "" {
		return 0
	}
	n := strings.Count(s, "\n")
	if !strings.HasSuffix(s, "\n") {
		n++
	}
	return n
}
