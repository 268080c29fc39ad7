package extract

import "testing"

var fallbacks = []string{"render/fluid.wgsl", "render/fluidRender.ts"}

func TestExtract_PlainPath(t *testing.T) {
	c := Extract("foo/bar.ts", fallbacks)
	if c.Path != "foo/bar.ts" || c.Provenance != FromModel {
		t.Errorf("got %q (%s), want foo/bar.ts from model", c.Path, c.Provenance)
	}
}

func TestExtract_ReasoningSpanBeforePath(t *testing.T) {
	raw := "<think>\nthe renderer is probably the bottleneck\n</think>\nfoo/bar.ts"
	c := Extract(raw, fallbacks)
	if c.Path != "foo/bar.ts" {
		t.Errorf("got %q, want foo/bar.ts", c.Path)
	}
	if c.Provenance != FromModel {
		t.Errorf("provenance = %s, want model", c.Provenance)
	}
}

func TestExtract_QuotedAndPunctuated(t *testing.T) {
	c := Extract(`  "src/renderers/Renderer.js".  `, fallbacks)
	if c.Path != "src/renderers/Renderer.js" {
		t.Errorf("got %q, want src/renderers/Renderer.js", c.Path)
	}
}

func TestExtract_FirstLineWins(t *testing.T) {
	// Later lines are ignored even if they look more plausible.
	raw := "render/a.wgsl\nsrc/much/better/candidate.ts"
	c := Extract(raw, fallbacks)
	if c.Path != "render/a.wgsl" {
		t.Errorf("got %q, want render/a.wgsl", c.Path)
	}
}

func TestExtract_FirstMatchInLine(t *testing.T) {
	c := Extract("use render/a.wgsl or render/b.wgsl", fallbacks)
	if c.Path != "render/a.wgsl" {
		t.Errorf("got %q, want render/a.wgsl", c.Path)
	}
}

func TestExtract_NoPathFallsBack(t *testing.T) {
	c := Extract("I could not determine a single file", fallbacks)
	if c.Path != fallbacks[0] {
		t.Errorf("got %q, want %q", c.Path, fallbacks[0])
	}
	if c.Provenance != FromFallback {
		t.Errorf("provenance = %s, want fallback", c.Provenance)
	}
}

func TestExtract_EmptyInput(t *testing.T) {
	c := Extract("", fallbacks)
	if c.Path != fallbacks[0] || c.Provenance != FromFallback {
		t.Errorf("got %q (%s), want fallback", c.Path, c.Provenance)
	}
}

func TestExtract_OnlyTags(t *testing.T) {
	c := Extract("<think>hmm</think>", fallbacks)
	if c.Path != fallbacks[0] {
		t.Errorf("got %q, want %q", c.Path, fallbacks[0])
	}
}

func TestExtract_NoFallbacks(t *testing.T) {
	c := Extract("no path here", nil)
	if c.Path != "" || c.Provenance != FromFallback {
		t.Errorf("got %q (%s), want empty fallback", c.Path, c.Provenance)
	}
}
