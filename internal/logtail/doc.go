// Package logtail reads the end of the gallery session log for the logs
// command.
//
// Read keeps a ring buffer of maxLines, so memory stays O(maxLines) however
// large the file is, and returns lines oldest first. A missing file is not
// an error; the TUI may simply not have run yet.
//
// Lines are expected in the charmbracelet/log text format:
//
//	2026/10/17 09:14:03 WARN <tabs/controller.go:99> list load failed query=/users/ err="..."
//
// Filter drops entries below a level and ColorizeLine styles the timestamp,
// caller and level with lipgloss.
package logtail
