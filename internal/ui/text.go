package ui

import "strings"

// truncate cuts value to limit runes, ending in "..." when there is room.
// A non-positive limit leaves value whole.
func truncate(value string, limit int) string {
	value = strings.TrimSpace(value)
	runes := []rune(value)
	switch {
	case limit <= 0 || len(runes) <= limit:
		return value
	case limit <= 3:
		return string(runes[:limit])
	}
	return string(runes[:limit-3]) + "..."
}

// padRight pads s with spaces to width runes.
func padRight(s string, width int) string {
	if n := len([]rune(s)); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}

// fit truncates and pads s to exactly width runes.
func fit(s string, width int) string {
	return padRight(truncate(s, width), width)
}
