// Package extract turns raw model output into a single trustworthy relative
// file path. Model responses are noisy: reasoning tags, quoting, prose. The
// pipeline is deterministic and never fails; unusable input degrades to the
// first fallback path.
package extract

import (
	"regexp"
	"strings"
)

// Provenance records where an extracted path came from.
type Provenance string

const (
	FromModel    Provenance = "model"
	FromFallback Provenance = "fallback"
)

// Candidate is a path extracted from model output, tagged with provenance.
type Candidate struct {
	Path       string
	Provenance Provenance
}

var (
	spanRe = regexp.MustCompile(`(?s)<(\w+)[^>]*>.*?</\1>`)
	tagRe  = regexp.MustCompile(`<[^>]+>`)
	pathRe = regexp.MustCompile(`[a-zA-Z0-9_/.-]+\.[a-zA-Z0-9]+`)
)

// Extract parses rawText into a relative file path. Only the first non-empty
// line is considered, and only its first path-shaped match: later lines are
// ignored even if they look more plausible ("trust the first answer").
// If nothing matches, fallbacks[0] is returned tagged FromFallback.
func Extract(rawText string, fallbacks []string) Candidate {
	// Reasoning spans like <think>...</think> must never leak into the
	// path. Paired spans are dropped wholesale, then stray tags.
	clean := spanRe.ReplaceAllString(rawText, "")
	clean = tagRe.ReplaceAllString(clean, "")

	line := firstNonEmptyLine(clean)
	line = strings.Trim(line, "\"'.,;: \t")

	if m := pathRe.FindString(line); m != "" {
		return Candidate{Path: m, Provenance: FromModel}
	}

	if len(fallbacks) == 0 {
		return Candidate{Provenance: FromFallback}
	}
	return Candidate{Path: fallbacks[0], Provenance: FromFallback}
}

func firstNonEmptyLine(s string) string {
	for _, line := range strings.Split(s, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			return trimmed
		}
	}
	return strings.TrimSpace(s)
}
