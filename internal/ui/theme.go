package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/gallery/internal/indicator"
)

// Theme is a named palette. Colors are hex strings.
type Theme struct {
	Name string

	Background string // screen
	Surface    string // header and command bar
	SurfaceAlt string // content box and popup

	SelectionBg   string
	SelectionText string

	Border      string
	BorderMuted string // popup frame
	BorderFocus string

	Text    string
	Muted   string
	Faint   string
	Accent  string
	Warning string // logo and caption
	Danger  string // lost thumbnails
	Info    string // loaded thumbnails
	Star    string

	// States colors the indicator blocks; missing entries fall back to Muted.
	States map[indicator.State]string
}

// Styles are the lipgloss styles derived from a Theme.
type Styles struct {
	Text       lipgloss.Style
	MutedText  lipgloss.Style
	FaintText  lipgloss.Style
	AccentText lipgloss.Style
	DangerText lipgloss.Style
	InfoText   lipgloss.Style
	StarText   lipgloss.Style

	Header   lipgloss.Style
	Logo     lipgloss.Style
	Selected lipgloss.Style

	states map[indicator.State]string
	muted  string
}

func fg(color string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color))
}

// Styles builds the styles for t.
func (t Theme) Styles() Styles {
	return Styles{
		Text:       fg(t.Text),
		MutedText:  fg(t.Muted),
		FaintText:  fg(t.Faint),
		AccentText: fg(t.Accent),
		DangerText: fg(t.Danger).Bold(true),
		InfoText:   fg(t.Info),
		StarText:   fg(t.Star).Bold(true),

		Header: fg(t.Text).Background(lipgloss.Color(t.Surface)).Padding(0, 1),
		Logo:   fg(t.Warning).Bold(true),
		Selected: fg(t.SelectionText).
			Background(lipgloss.Color(t.SelectionBg)),

		states: t.States,
		muted:  t.Muted,
	}
}

// StateStyle returns the foreground style for an indicator state.
func (s Styles) StateStyle(st indicator.State) lipgloss.Style {
	if c, ok := s.states[st]; ok {
		return fg(c)
	}
	return fg(s.muted)
}

// WithBackground puts every foreground style on bgColor. Selected keeps its
// own background.
func (s Styles) WithBackground(bgColor string) Styles {
	bg := lipgloss.Color(bgColor)
	out := s
	for _, st := range []*lipgloss.Style{
		&out.Text, &out.MutedText, &out.FaintText, &out.AccentText,
		&out.DangerText, &out.InfoText, &out.StarText, &out.Header, &out.Logo,
	} {
		*st = st.Background(bg)
	}
	return out
}

// DefaultThemeName is used when no preference is stored.
const DefaultThemeName = "Nightfox"

var themeOrder = []string{"Nightfox", "Kanagawa", "Slate"}

var themes = map[string]Theme{
	"Nightfox": {
		// https://github.com/EdenEast/nightfox.nvim
		Name:          "Nightfox",
		Background:    "#131a24",
		Surface:       "#192330",
		SurfaceAlt:    "#212e3f",
		SelectionBg:   "#2b3b51",
		SelectionText: "#cdcecf",
		Border:        "#39506d",
		BorderMuted:   "#29394f",
		BorderFocus:   "#719cd6",
		Text:          "#cdcecf",
		Muted:         "#738091",
		Faint:         "#71839b",
		Accent:        "#719cd6",
		Warning:       "#dbc074",
		Danger:        "#c94f6d",
		Info:          "#63cdcf",
		Star:          "#f4a261",
		States: map[indicator.State]string{
			indicator.Pending: "#63cdcf",
			indicator.Success: "#81b29a",
			indicator.Error:   "#c94f6d",
			indicator.Empty:   "#dbc074",
		},
	},
	"Kanagawa": {
		// https://github.com/rebelot/kanagawa.nvim
		Name:          "Kanagawa",
		Background:    "#16161D",
		Surface:       "#1F1F28",
		SurfaceAlt:    "#2A2A37",
		SelectionBg:   "#2D4F67",
		SelectionText: "#DCD7BA",
		Border:        "#54546D",
		BorderMuted:   "#363646",
		BorderFocus:   "#7E9CD8",
		Text:          "#DCD7BA",
		Muted:         "#C8C093",
		Faint:         "#727169",
		Accent:        "#7E9CD8",
		Warning:       "#E6C384",
		Danger:        "#E46876",
		Info:          "#7FB4CA",
		Star:          "#FFA066",
		States: map[indicator.State]string{
			indicator.Pending: "#7FB4CA",
			indicator.Success: "#98BB6C",
			indicator.Error:   "#E46876",
			indicator.Empty:   "#E6C384",
		},
	},
	"Slate": {
		// Tailwind slate and sky
		Name:          "Slate",
		Background:    "#020617",
		Surface:       "#0f172a",
		SurfaceAlt:    "#1e293b",
		SelectionBg:   "#0284c7",
		SelectionText: "#f8fafc",
		Border:        "#334155",
		BorderMuted:   "#475569",
		BorderFocus:   "#38bdf8",
		Text:          "#f1f5f9",
		Muted:         "#94a3b8",
		Faint:         "#64748b",
		Accent:        "#38bdf8",
		Warning:       "#f59e0b",
		Danger:        "#ef4444",
		Info:          "#06b6d4",
		Star:          "#facc15",
		States: map[indicator.State]string{
			indicator.Pending: "#38bdf8",
			indicator.Success: "#22c55e",
			indicator.Error:   "#dc2626",
			indicator.Empty:   "#f59e0b",
		},
	},
}

// GetTheme returns the named theme, or the default for unknown names.
func GetTheme(name string) Theme {
	if t, ok := themes[name]; ok {
		return t
	}
	return themes[DefaultThemeName]
}

// NextTheme returns the theme after current in the cycle.
func NextTheme(current string) string {
	for i, name := range themeOrder {
		if name == current {
			return themeOrder[(i+1)%len(themeOrder)]
		}
	}
	return themeOrder[0]
}

// ThemeNames lists the themes in cycle order.
func ThemeNames() []string {
	return themeOrder
}
