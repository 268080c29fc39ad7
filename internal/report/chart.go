package report

import (
	"fmt"
	"os"
	"strings"
)

// WriteChart renders the report as an SVG bar chart: average frame time and
// estimated FPS per variant, with the improvement headline. SVG keeps the
// tool dependency-free for image output.
func (r Report) WriteChart(path string) error {
	const (
		width  = 640
		height = 360
		panelW = 280
		panelY = 70
		panelH = 230
		barW   = 80
	)

	var b strings.Builder
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d">`+"\n", width, height)
	fmt.Fprintf(&b, `<rect width="%d" height="%d" fill="white"/>`+"\n", width, height)
	fmt.Fprintf(&b, `<text x="%d" y="32" font-family="sans-serif" font-size="18" text-anchor="middle">Optimization Performance: %.1f%% Improvement</text>`+"\n",
		width/2, r.ImprovementPct)

	drawPanel(&b, 20, panelY, panelW, panelH, barW, "Avg Frame Time (ms)", "ms",
		r.Original.AvgFrameTimeMs, r.Optimized.AvgFrameTimeMs)
	drawPanel(&b, 340, panelY, panelW, panelH, barW, "Estimated FPS", "FPS",
		r.Original.EstimatedFPS, r.Optimized.EstimatedFPS)

	b.WriteString("</svg>\n")
	return os.WriteFile(path, []byte(b.String()), 0o644)
}

func drawPanel(b *strings.Builder, x, y, w, h, barW int, title, unit string, origVal, optVal float64) {
	fmt.Fprintf(b, `<text x="%d" y="%d" font-family="sans-serif" font-size="14" text-anchor="middle">%s</text>`+"\n",
		x+w/2, y-8, title)

	maxVal := origVal
	if optVal > maxVal {
		maxVal = optVal
	}
	if maxVal <= 0 {
		maxVal = 1
	}

	bars := []struct {
		label string
		value float64
		color string
	}{
		{"Original", origVal, "#FF9999"},
		{"Optimized", optVal, "#66B2FF"},
	}

	for i, bar := range bars {
		bx := x + 30 + i*(barW+50)
		bh := int(bar.value / maxVal * float64(h-50))
		by := y + h - 30 - bh
		fmt.Fprintf(b, `<rect x="%d" y="%d" width="%d" height="%d" fill="%s"/>`+"\n", bx, by, barW, bh, bar.color)
		fmt.Fprintf(b, `<text x="%d" y="%d" font-family="sans-serif" font-size="12" text-anchor="middle">%.2f %s</text>`+"\n",
			bx+barW/2, by-6, bar.value, unit)
		fmt.Fprintf(b, `<text x="%d" y="%d" font-family="sans-serif" font-size="12" text-anchor="middle">%s</text>`+"\n",
			bx+barW/2, y+h-12, bar.label)
	}
}
