package ui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/gallery/internal/indicator"
	"github.com/five82/gallery/internal/state"
)

// renderHeader renders the title bar with the session counters.
func (m Model) renderHeader() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	parts := []string{bg.Render("gallery", styles.Logo)}

	users := 0
	if list := m.session.Catalog.List; list != nil {
		users = list.Len()
	}
	if m.width >= LayoutCompactWidth {
		parts = append(parts,
			bg.Render("Users:", styles.MutedText)+bg.Space()+
				bg.Render(strconv.Itoa(users), styles.Text),
			bg.Render("Favorites:", styles.MutedText)+bg.Space()+
				bg.Render(strconv.Itoa(m.session.Favorites.Size()), styles.StarText),
		)
	} else {
		parts = append(parts,
			bg.Render("★", styles.StarText)+bg.Space()+
				bg.Render(strconv.Itoa(m.session.Favorites.Size()), styles.Text))
	}

	if loading := m.loadingCount(); loading > 0 {
		parts = append(parts,
			bg.Render("Loading:", styles.MutedText)+bg.Space()+
				bg.Render(strconv.Itoa(loading), styles.InfoText))
	}
	if failed := m.failedCount(); failed > 0 {
		parts = append(parts,
			bg.Render("Failed:", styles.MutedText)+bg.Space()+
				bg.Render(strconv.Itoa(failed), styles.DangerText))
	}

	return lipgloss.NewStyle().
		Background(lipgloss.Color(m.theme.Surface)).
		Foreground(lipgloss.Color(m.theme.Text)).
		Width(m.width).
		Render(styles.Header.Render(bg.Join(parts, "  ")))
}

// loadingCount counts the spinning indicators visible in the active tab.
func (m Model) loadingCount() int {
	n := 0
	for _, r := range m.rows {
		if r.kind == rowStatus && r.ind.Spinning() {
			n++
		}
	}
	return n
}

func (m Model) failedCount() int {
	n := 0
	for _, r := range m.rows {
		if r.kind == rowStatus && r.ind.State() == indicator.Error {
			n++
		}
	}
	return n
}

// renderCommandBar renders the key hints for the current mode.
func (m Model) renderCommandBar() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	type cmd struct{ key, desc string }
	var commands []cmd

	switch {
	case m.session.Popup.Open:
		commands = []cmd{
			{"esc", "Close"},
			{"s", "Favorite"},
			{"?", "More"},
		}
	case m.session.Active == state.TabFavorites:
		commands = []cmd{
			{"j/k", "Navigate"},
			{"s", "Unfavorite"},
			{"o", "Open"},
			{"1", "Catalog"},
			{"?", "More"},
		}
	default:
		commands = []cmd{
			{"j/k", "Navigate"},
			{"enter", "Expand"},
			{"s", "Favorite"},
			{"o", "Open"},
			{"2", "Favorites"},
			{"?", "More"},
		}
	}

	colon := bg.Plain(":")
	sep := bg.Spaces(2)

	segments := make([]string, 0, len(commands)+1)
	for _, c := range commands {
		segments = append(segments,
			bg.Render(c.key, styles.AccentText)+colon+bg.Render(c.desc, styles.MutedText))
	}
	segments = append(segments,
		bg.Render("T", styles.AccentText)+colon+bg.Render(m.theme.Name, styles.FaintText))

	return styles.Header.Width(m.width).Render(strings.Join(segments, sep))
}
