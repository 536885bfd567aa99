package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// BgStyle paints text segments onto one background color. Each lipgloss
// segment ends in a reset, so the spaces between styled words must carry
// the background themselves or the row shows gaps.
type BgStyle struct {
	bg    lipgloss.Color
	plain lipgloss.Style
	space string
}

// NewBgStyle returns a painter for bgColor.
func NewBgStyle(bgColor string) BgStyle {
	bg := lipgloss.Color(bgColor)
	plain := lipgloss.NewStyle().Background(bg)
	return BgStyle{bg: bg, plain: plain, space: plain.Render(" ")}
}

// Render draws text in style on the background, word by word.
func (b BgStyle) Render(text string, style lipgloss.Style) string {
	if text == "" {
		return ""
	}
	style = style.Background(b.bg)
	words := strings.Split(text, " ")
	for i, w := range words {
		if w != "" {
			words[i] = style.Render(w)
		}
	}
	return strings.Join(words, b.space)
}

// Plain draws text with only the background set.
func (b BgStyle) Plain(text string) string {
	return b.plain.Render(text)
}

// Space is one background cell.
func (b BgStyle) Space() string {
	return b.space
}

// Spaces is n background cells.
func (b BgStyle) Spaces(n int) string {
	if n <= 0 {
		return ""
	}
	return b.plain.Render(strings.Repeat(" ", n))
}

// FillLine extends rendered content to width.
func (b BgStyle) FillLine(content string, width int) string {
	return b.plain.Width(width).Render(content)
}

// Join concatenates rendered parts with sep drawn on the background.
func (b BgStyle) Join(parts []string, sep string) string {
	return strings.Join(parts, b.Plain(sep))
}
