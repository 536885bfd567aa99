package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/gallery/internal/indicator"
	"github.com/five82/gallery/internal/tabs"
)

// popupFrameHeight is the number of rows of the image frame.
const popupFrameHeight = 9

// popupGeometry locates the lightbox on screen.
type popupGeometry struct {
	x0, y0 int
	w, h   int
	inner  int
	close  tabs.Rect
	image  tabs.Rect
}

// layoutPopup centers the lightbox on a width x height screen.
func layoutPopup(width, height int) popupGeometry {
	w := popupWidth
	if w > width-4 {
		w = width - 4
	}
	if w < 24 {
		w = width
	}
	// border, padding, title, gap, frame, gap, url, padding, border
	h := 2 + 2*popupPadY + 1 + 1 + popupFrameHeight + 1 + 1

	g := popupGeometry{w: w, h: h, inner: w - 2 - 2*popupPadX}
	g.x0 = max(0, (width-w)/2)
	g.y0 = max(0, (height-h)/2)

	left := g.x0 + 1 + popupPadX
	top := g.y0 + 1 + popupPadY
	g.close = tabs.Rect{X: left + g.inner - len(popupCloseUI), Y: top, W: len(popupCloseUI) - 1}
	g.image = tabs.Rect{X: left, Y: top + 2, W: g.inner - 1, H: popupFrameHeight - 1}
	return g
}

// classify maps a click inside the popup layer to its target.
func (g popupGeometry) classify(x, y int) tabs.TargetKind {
	switch {
	case g.close.Contains(x, y, 0):
		return tabs.TargetPopupClose
	case g.image.Contains(x, y, 0):
		return tabs.TargetPopupImage
	default:
		return tabs.TargetPopupBackdrop
	}
}

func (m Model) popupBox(g popupGeometry) []string {
	surface := m.theme.Surface
	styles := m.theme.Styles().WithBackground(surface)
	bg := NewBgStyle(surface)
	borderStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.BorderFocus))
	frameStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.BorderMuted))
	innerStyle := lipgloss.NewStyle().Width(g.inner).MaxWidth(g.inner).Background(lipgloss.Color(surface))
	popup := m.session.Popup

	var inner []string
	for i := 0; i < popupPadY; i++ {
		inner = append(inner, "")
	}
	title := padRight(truncate(popup.Title, g.inner-len(popupCloseUI)-1), g.inner-len(popupCloseUI))
	inner = append(inner, bg.Render(title, styles.Text.Bold(true))+bg.Render(popupCloseUI, styles.AccentText))
	inner = append(inner, "")

	frame := m.popupFrame(g.inner, styles, bg)
	inner = append(inner, bg.Render("┌"+strings.Repeat("─", g.inner-2)+"┐", frameStyle))
	for _, l := range frame {
		inner = append(inner, bg.Render("│", frameStyle)+l+bg.Render("│", frameStyle))
	}
	inner = append(inner, bg.Render("└"+strings.Repeat("─", g.inner-2)+"┘", frameStyle))

	inner = append(inner, "")
	inner = append(inner, bg.Render(truncate(popup.URL, g.inner), styles.FaintText))
	for i := 0; i < popupPadY; i++ {
		inner = append(inner, "")
	}

	pad := bg.Spaces(popupPadX)
	lines := make([]string, 0, g.h)
	lines = append(lines, bg.Render("╭"+strings.Repeat("─", g.w-2)+"╮", borderStyle))
	for _, l := range inner {
		lines = append(lines, bg.Render("│", borderStyle)+pad+innerStyle.Render(l)+pad+bg.Render("│", borderStyle))
	}
	lines = append(lines, bg.Render("╰"+strings.Repeat("─", g.w-2)+"╯", borderStyle))
	return lines
}

// popupFrame renders the rows inside the image frame.
func (m Model) popupFrame(inner int, styles Styles, bg BgStyle) []string {
	popup := m.session.Popup
	width := inner - 2
	rows := popupFrameHeight - 2
	body := make([]string, rows)

	var text []string
	switch {
	case popup.Indicator.Spinning():
		text = []string{m.spinner.View() + bg.Render(" Loading...", styles.MutedText)}
	case popup.Indicator.State() == indicator.Error:
		msg, _ := popup.Indicator.Message()
		st := styles.StateStyle(indicator.Error).Background(bg.bg).Bold(true)
		text = []string{
			bg.Render(iconGlyph(msg.Icon)+" "+msg.Title, st),
			bg.Render(msg.Description, styles.MutedText),
		}
	case popup.Image != nil:
		text = []string{
			bg.Render(imageSize(*popup.Image), styles.InfoText.Bold(true)),
			bg.Render(popup.Image.Format, styles.MutedText),
			bg.Render(popup.Photo.String(), styles.FaintText),
		}
	}

	start := (rows - len(text)) / 2
	for i := range body {
		j := i - start
		if j < 0 || j >= len(text) {
			body[i] = bg.Spaces(width)
			continue
		}
		body[i] = centerStyled(text[j], width, bg)
	}
	return body
}

// centerStyled centers an already styled string in width cells.
func centerStyled(s string, width int, bg BgStyle) string {
	w := lipgloss.Width(s)
	if w >= width {
		return s
	}
	left := (width - w) / 2
	return bg.Spaces(left) + s + bg.Spaces(width-w-left)
}
