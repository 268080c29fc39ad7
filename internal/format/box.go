package format

import (
	"fmt"
	"strings"
)

// FormatBorderedText renders text inside a bordered box with word wrapping.
func FormatBorderedText(text, title string) string {
	termWidth := TermWidth()
	innerW := termWidth - 4
	if innerW < 30 {
		innerW = 30
	}

	var wrapped []string
	for _, paragraph := range strings.Split(text, "\n") {
		if strings.TrimSpace(paragraph) == "" {
			wrapped = append(wrapped, "")
			continue
		}
		wrapped = append(wrapped, wordWrap(paragraph, innerW)...)
	}

	var output []string

	if title != "" {
		lbl := fmt.Sprintf("─ %s ", title)
		output = append(output, fmt.Sprintf("┌%s%s┐",
			lbl, strings.Repeat("─", innerW+2-runeLen(lbl))))
	} else {
		output = append(output, fmt.Sprintf("┌%s┐",
			strings.Repeat("─", innerW+2)))
	}

	for _, line := range wrapped {
		padded := padOrTrunc(line, innerW)
		output = append(output, fmt.Sprintf("│ %s │", padded))
	}

	output = append(output, fmt.Sprintf("└%s┘",
		strings.Repeat("─", innerW+2)))

	return strings.Join(output, "\n")
}

// FormatBars renders a horizontal bar chart for labeled values. Bars are
// scaled to the largest value; each row shows the label, the bar, and the
// formatted value.
func FormatBars(labels []string, values []float64, unit string) string {
	if len(labels) == 0 || len(labels) != len(values) {
		return ""
	}

	maxVal := values[0]
	labelW := runeLen(labels[0])
	for i := range labels {
		if values[i] > maxVal {
			maxVal = values[i]
		}
		if runeLen(labels[i]) > labelW {
			labelW = runeLen(labels[i])
		}
	}
	if maxVal <= 0 {
		maxVal = 1
	}

	barW := TermWidth() - labelW - 16
	if barW < 10 {
		barW = 10
	}
	if barW > 50 {
		barW = 50
	}

	var output []string
	for i := range labels {
		filled := int(values[i] / maxVal * float64(barW))
		if filled < 1 && values[i] > 0 {
			filled = 1
		}
		bar := strings.Repeat("█", filled) + strings.Repeat("░", barW-filled)
		output = append(output, fmt.Sprintf("  %-*s %s%s%s %.2f %s",
			labelW, labels[i], Cyan, bar, Reset, values[i], unit))
	}
	return strings.Join(output, "\n")
}

// wordWrap wraps text to the given width, breaking at word boundaries.
func wordWrap(text string, width int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return []string{""}
	}

	var lines []string
	current := words[0]

	for _, word := range words[1:] {
		if len(current)+1+len(word) <= width {
			current += " " + word
		} else {
			lines = append(lines, current)
			current = word
		}
	}
	lines = append(lines, current)
	return lines
}

func padOrTrunc(s string, w int) string {
	r := []rune(s)
	if len(r) > w {
		return string(r[:w])
	}
	return s + strings.Repeat(" ", w-len(r))
}

func runeLen(s string) int {
	return len([]rune(s))
}
