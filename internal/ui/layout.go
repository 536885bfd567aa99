package ui

// Screen rows above the first content line: header, command bar, tab bar and
// the top border of the content box.
const (
	headerRow   = 0
	commandRow  = 1
	tabBarRow   = 2
	contentTop  = 4
	contentLeft = 1
)

// Row geometry.
const (
	// indentWidth is the indent per nesting level.
	indentWidth = 2

	// markerWidth holds the expand control ("▸ " / "▾ ").
	markerWidth = 2

	// starWidth holds the favorite star and a space.
	starWidth = 2

	// thumbWidth is the fixed width of the thumbnail token "[150x150  ]".
	thumbWidth = 11
)

// Popup geometry.
const (
	popupWidth   = 64
	popupPadX    = 2
	popupPadY    = 1
	popupCloseUI = "[x]"
)

// LayoutCompactWidth is the width below which the header drops the counters.
const LayoutCompactWidth = 80
