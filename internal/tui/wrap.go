package tui

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

const ellipsis = "…"

// wrapCandidates packs items into lines no wider than width, separated by
// two spaces. Items wider than a line are truncated.
func wrapCandidates(items []string, width int) []string {
	if len(items) == 0 {
		return nil
	}
	if width <= 0 {
		return []string{strings.Join(items, "  ")}
	}
	var lines []string
	var line strings.Builder
	lineWidth := 0
	for _, item := range items {
		item = truncateDisplay(item, width)
		w := runewidth.StringWidth(item)
		sep := 0
		if lineWidth > 0 {
			sep = 2
		}
		if lineWidth > 0 && lineWidth+sep+w > width {
			lines = append(lines, line.String())
			line.Reset()
			lineWidth, sep = 0, 0
		}
		if sep > 0 {
			line.WriteString("  ")
		}
		line.WriteString(item)
		lineWidth += sep + w
	}
	if lineWidth > 0 {
		lines = append(lines, line.String())
	}
	return lines
}

func truncateDisplay(s string, width int) string {
	if width <= 0 || runewidth.StringWidth(s) <= width {
		return s
	}
	return runewidth.Truncate(s, width, ellipsis)
}
