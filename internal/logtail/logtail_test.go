package logtail

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestRead(t *testing.T) {
	tmpDir := t.TempDir()
	logPath := filepath.Join(tmpDir, "test.log")

	var content strings.Builder
	var expectedAll []string
	for i := 1; i <= 10; i++ {
		line := fmt.Sprintf("Line %d", i)
		content.WriteString(line + "\n")
		expectedAll = append(expectedAll, line)
	}

	if err := os.WriteFile(logPath, []byte(content.String()), 0644); err != nil {
		t.Fatalf("failed to create test log file: %v", err)
	}

	tests := []struct {
		name     string
		maxLines int
		expected []string
	}{
		{
			name:     "zero",
			maxLines: 0,
			expected: nil,
		},
		{
			name:     "read partial (5)",
			maxLines: 5,
			expected: expectedAll[5:],
		},
		{
			name:     "read exactly all (10)",
			maxLines: 10,
			expected: expectedAll,
		},
		{
			name:     "read more than exists (20)",
			maxLines: 20,
			expected: expectedAll,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Read(logPath, tt.maxLines)
			if err != nil {
				t.Fatalf("Read() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("Read() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestRead_MissingFile(t *testing.T) {
	got, err := Read(filepath.Join(t.TempDir(), "none.log"), 10)
	if err != nil || got != nil {
		t.Fatalf("Read(missing) = %v, %v; want nil, nil", got, err)
	}
}

func TestLineLevel(t *testing.T) {
	tests := []struct {
		line string
		want log.Level
		pos  int
		ok   bool
	}{
		{"2026/10/17 09:14:03 WARN <tabs/controller.go:99> list load failed", log.WarnLevel, 2, true},
		{"2026/10/17 09:14:03 <app/app.go:40> INFO gallery starting", log.InfoLevel, 3, true},
		{"2026/10/17 09:14:03 ERRO flush failed", log.ErrorLevel, 2, true},
		{"  err=\"connection refused\"", 0, -1, false},
		{"a b c d WARN", 0, -1, false},
	}
	for _, tt := range tests {
		lvl, pos, ok := LineLevel(tt.line)
		if ok != tt.ok || pos != tt.pos || (ok && lvl != tt.want) {
			t.Fatalf("LineLevel(%q) = %v, %d, %v", tt.line, lvl, pos, ok)
		}
	}
}

func TestFilter(t *testing.T) {
	lines := []string{
		"2026/10/17 09:14:03 DEBU dispatch target=expand",
		"2026/10/17 09:14:04 WARN list load failed",
		"  stack continuation",
		"2026/10/17 09:14:05 INFO favorite added",
		"2026/10/17 09:14:06 ERRO save failed",
	}

	got := Filter(lines, log.WarnLevel)
	want := []string{lines[1], lines[2], lines[4]}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Filter(warn) = %v, want %v", got, want)
	}

	if all := Filter(lines, log.DebugLevel); len(all) != len(lines) {
		t.Fatalf("Filter(debug) kept %d lines, want %d", len(all), len(lines))
	}
}

func TestColorizeLine_KeepsText(t *testing.T) {
	line := "2026/10/17 09:14:04 WARN <tabs/controller.go:99> list load failed"
	got := ColorizeLine(line)
	for _, part := range []string{"2026/10/17", "09:14:04", "WARN", "<tabs/controller.go:99>", "list load failed"} {
		if !strings.Contains(got, part) {
			t.Fatalf("ColorizeLine dropped %q: %q", part, got)
		}
	}
	if plain := "continuation line"; ColorizeLine(plain) != plain {
		t.Fatalf("ColorizeLine changed a line without a level")
	}
}
