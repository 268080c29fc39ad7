package format

import (
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// FormatSideBySideDiff renders a side-by-side view of the original and
// optimized content with box-drawing borders.
func FormatSideBySideDiff(originalText, optimizedText string) string {
	termWidth := TermWidth()
	colW := (termWidth - 7) / 2
	if colW < 20 {
		colW = 20
	}

	oldLines := expandTabs(originalText)
	newLines := expandTabs(optimizedText)

	if len(oldLines) == 0 {
		oldLines = []string{""}
	}
	if len(newLines) == 0 {
		newLines = []string{""}
	}

	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(strings.Join(oldLines, "\n"), strings.Join(newLines, "\n"), true)
	diffs = dmp.DiffCleanupSemantic(diffs)

	type diffRow struct {
		tag   string // "equal", "delete", "insert", "replace"
		left  *string
		right *string
	}

	var rows []diffRow
	var oldBuf, newBuf []string

	flushBuf := func() {
		maxLen := len(oldBuf)
		if len(newBuf) > maxLen {
			maxLen = len(newBuf)
		}
		for i := 0; i < maxLen; i++ {
			var o, n *string
			tag := "replace"
			if i < len(oldBuf) {
				o = &oldBuf[i]
			}
			if i < len(newBuf) {
				n = &newBuf[i]
			}
			if o == nil {
				tag = "insert"
			} else if n == nil {
				tag = "delete"
			}
			rows = append(rows, diffRow{tag: tag, left: o, right: n})
		}
		oldBuf = nil
		newBuf = nil
	}

	for _, d := range diffs {
		lines := strings.Split(d.Text, "\n")
		switch d.Type {
		case diffmatchpatch.DiffEqual:
			flushBuf()
			for _, l := range lines {
				lCopy := l
				rows = append(rows, diffRow{tag: "equal", left: &lCopy, right: &lCopy})
			}
		case diffmatchpatch.DiffDelete:
			oldBuf = append(oldBuf, lines...)
		case diffmatchpatch.DiffInsert:
			newBuf = append(newBuf, lines...)
		}
	}
	flushBuf()

	totalRows := len(rows)
	maxDisplay := 40
	truncated := totalRows > maxDisplay
	if truncated {
		rows = rows[:maxDisplay]
	}

	var output []string

	lblL := "─ Original "
	lblR := "─ Optimized "
	output = append(output, fmt.Sprintf("┌%s%s┬%s%s┐",
		lblL, strings.Repeat("─", colW+2-runeLen(lblL)),
		lblR, strings.Repeat("─", colW+2-runeLen(lblR))))

	for _, r := range rows {
		left := padOrTrunc("", colW)
		right := padOrTrunc("", colW)
		if r.left != nil {
			left = padOrTrunc(*r.left, colW)
		}
		if r.right != nil {
			right = padOrTrunc(*r.right, colW)
		}

		switch r.tag {
		case "equal":
			output = append(output, fmt.Sprintf("│ %s%s%s │ %s%s%s │",
				Dim, left, Reset, Dim, right, Reset))
		case "delete":
			output = append(output, fmt.Sprintf("│ %s%s%s │ %s │",
				Red, left, Reset, strings.Repeat(" ", colW)))
		case "insert":
			output = append(output, fmt.Sprintf("│ %s │ %s%s%s │",
				strings.Repeat(" ", colW), Green, right, Reset))
		case "replace":
			l := strings.Repeat(" ", colW)
			r2 := strings.Repeat(" ", colW)
			if r.left != nil {
				l = Red + left + Reset
			}
			if r.right != nil {
				r2 = Green + right + Reset
			}
			output = append(output, fmt.Sprintf("│ %s │ %s │", l, r2))
		}
	}

	output = append(output, fmt.Sprintf("└%s┴%s┘",
		strings.Repeat("─", colW+2), strings.Repeat("─", colW+2)))

	if truncated {
		output = append(output, fmt.Sprintf("  %s… %d more lines not shown%s",
			Dim, totalRows-maxDisplay, Reset))
	}

	return strings.Join(output, "\n")
}

func expandTabs(text string) []string {
	if text == "" {
		return nil
	}
	expanded := strings.ReplaceAll(text, "\t", "    ")
	return strings.Split(expanded, "\n")
}
