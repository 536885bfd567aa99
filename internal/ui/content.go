package ui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/gallery/internal/indicator"
	"github.com/five82/gallery/internal/state"
)

// tabSpan is the screen column range of a tab label on the tab bar.
type tabSpan struct {
	tab    state.Tab
	label  string
	x0, x1 int
}

func (m Model) tabSpans() []tabSpan {
	spans := make([]tabSpan, 0, len(state.Tabs))
	x := 1
	for _, t := range state.Tabs {
		label := " " + t.String() + " "
		if t == state.TabFavorites {
			label = " " + t.String() + " (" + strconv.Itoa(m.session.Favorites.Size()) + ") "
		}
		w := len([]rune(label))
		spans = append(spans, tabSpan{tab: t, label: label, x0: x, x1: x + w - 1})
		x += w + 1
	}
	return spans
}

// renderTabBar renders the tab headers with the active tab highlighted.
func (m Model) renderTabBar() string {
	styles := m.theme.Styles().WithBackground(m.theme.Background)
	bg := NewBgStyle(m.theme.Background)
	active := lipgloss.NewStyle().
		Background(lipgloss.Color(m.theme.SelectionBg)).
		Foreground(lipgloss.Color(m.theme.SelectionText)).
		Bold(true)

	var b strings.Builder
	b.WriteString(bg.Spaces(1))
	for i, span := range m.tabSpans() {
		if span.tab == m.session.Active {
			b.WriteString(active.Render(span.label))
		} else {
			b.WriteString(bg.Render(span.label, styles.MutedText))
		}
		if i < len(state.Tabs)-1 {
			b.WriteString(bg.Spaces(1))
		}
	}
	return bg.FillLine(b.String(), m.width)
}

// contentLines renders the flattened rows of the active tab, with the
// floating caption drawn over the line beneath the pointer.
func (m Model) contentLines(width int) []string {
	bgColor := m.theme.SurfaceAlt
	styles := m.theme.Styles().WithBackground(bgColor)
	bg := NewBgStyle(bgColor)

	selected := -1
	if idx := itemIndexes(m.rows); len(idx) > 0 {
		selected = idx[clamp(m.cursor[m.session.Active], 0, len(idx)-1)]
	}

	lines := make([]string, 0, len(m.rows)+1)
	for i, r := range m.rows {
		switch r.kind {
		case rowStatus:
			lines = append(lines, m.renderStatus(r, width, styles, bg))
		default:
			lines = append(lines, m.renderRow(r, width, i == selected, styles, bg))
		}
	}

	caption := m.session.Caption
	if !caption.Visible || m.session.Popup.Open {
		return lines
	}
	li := caption.Y - contentTop + m.viewport.YOffset
	if li < 0 || li > len(lines) {
		return lines
	}
	captionStyle := lipgloss.NewStyle().
		Background(lipgloss.Color(m.theme.Warning)).
		Foreground(lipgloss.Color(m.theme.Background))
	offset := caption.X - contentLeft
	if offset < 0 {
		offset = 0
	}
	text := truncate(caption.Text, width-offset-2)
	overlay := bg.Spaces(offset) + captionStyle.Render(" "+text+" ")
	if li == len(lines) {
		return append(lines, overlay)
	}
	lines[li] = overlay
	return lines
}

func (m Model) renderRow(r row, width int, selected bool, styles Styles, bg BgStyle) string {
	n := r.node
	g := layoutRow(r)

	marker := "  "
	if n.Expandable {
		marker = "▸ "
		if n.Expanded {
			marker = "▾ "
		}
	}
	star := ""
	if n.Star {
		star = "☆ "
		if n.Active {
			star = "★ "
		}
	}
	thumb := ""
	if g.hasThumb {
		thumb = thumbLabel(n) + " "
	}
	title := truncate(n.Title, width-g.titleX)

	if selected {
		plain := strings.Repeat(" ", g.markerX) + marker + star + thumb + title
		return styles.Selected.Width(width).Render(plain)
	}

	var b strings.Builder
	b.WriteString(bg.Spaces(g.markerX))
	b.WriteString(bg.Render(marker, styles.AccentText))
	if star != "" {
		starStyle := styles.FaintText
		if n.Active {
			starStyle = styles.StarText
		}
		b.WriteString(bg.Render(star, starStyle))
	}
	if thumb != "" {
		thumbStyle := styles.InfoText
		switch {
		case n.ImageLost:
			thumbStyle = styles.DangerText
		case n.Image == nil:
			thumbStyle = styles.FaintText
		}
		b.WriteString(bg.Render(thumb, thumbStyle))
	}
	b.WriteString(bg.Render(title, styles.Text))
	return b.String()
}

func (m Model) renderStatus(r row, width int, styles Styles, bg BgStyle) string {
	indent := r.depth*indentWidth + markerWidth
	if r.ind.Spinning() {
		return bg.Spaces(indent) + m.spinner.View() + bg.Render(" Loading...", styles.MutedText)
	}
	msg, ok := r.ind.Message()
	if !ok {
		return ""
	}
	stateStyle := styles.StateStyle(r.ind.State()).Background(bg.bg).Bold(true)
	text := truncate(msg.Title, width-indent-4)
	line := bg.Spaces(indent) + bg.Render(iconGlyph(msg.Icon)+" ", stateStyle) + bg.Render(text, stateStyle)
	if desc := strings.TrimSpace(msg.Description); desc != "" {
		line += bg.Render(" · "+desc, styles.MutedText)
	}
	return line
}

func iconGlyph(icon indicator.Icon) string {
	switch icon {
	case indicator.IconError:
		return "✗"
	case indicator.IconEmpty:
		return "☆"
	default:
		return "…"
	}
}

// renderTitledBox draws content inside a border with the title centered on
// the top edge.
func (m Model) renderTitledBox(title, content string, width, height int, focused bool) string {
	borderColorStr, bgColorStr := m.theme.Border, m.theme.SurfaceAlt
	if focused {
		borderColorStr = m.theme.BorderFocus
	}
	bg := NewBgStyle(bgColorStr)
	borderStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(borderColorStr))
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(m.theme.Text))

	innerWidth := width - 2
	titleLen := len([]rune(title))
	leftPad := (innerWidth - titleLen - 2) / 2
	rightPad := innerWidth - titleLen - 2 - leftPad
	if leftPad < 0 || rightPad < 0 {
		leftPad, rightPad, title = 0, 0, ""
		rightPad = innerWidth - 2
	}

	topBorder := bg.Render("┌", borderStyle) +
		bg.Render(strings.Repeat("─", leftPad), borderStyle) +
		bg.Render(" "+title+" ", titleStyle) +
		bg.Render(strings.Repeat("─", rightPad), borderStyle) +
		bg.Render("┐", borderStyle)

	bottomBorder := bg.Render("└", borderStyle) +
		bg.Render(strings.Repeat("─", innerWidth), borderStyle) +
		bg.Render("┘", borderStyle)

	contentStyle := lipgloss.NewStyle().Width(innerWidth).MaxWidth(innerWidth).Background(lipgloss.Color(bgColorStr))
	contentLines := strings.Split(content, "\n")
	boxHeight := height - 2

	lines := make([]string, 0, boxHeight)
	for i := 0; i < boxHeight; i++ {
		var line string
		if i < len(contentLines) {
			line = contentLines[i]
		}
		lines = append(lines,
			bg.Render("│", borderStyle)+
				contentStyle.Render(line)+
				bg.Render("│", borderStyle))
	}

	return topBorder + "\n" + strings.Join(lines, "\n") + "\n" + bottomBorder
}

// renderContent renders the active tab inside its box.
func (m Model) renderContent() string {
	height := m.height - contentTop + 1
	if height < 3 {
		height = 3
	}
	return m.renderTitledBox(m.contentTitle(), m.viewport.View(), m.width, height, !m.session.Popup.Open)
}

func (m Model) contentTitle() string {
	if m.session.Active == state.TabFavorites {
		return "Favorites"
	}
	return "Catalog"
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
