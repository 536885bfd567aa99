package ui

import (
	"github.com/five82/gallery/internal/catalog"
	"github.com/five82/gallery/internal/tabs"
)

// rowAt returns the index into m.rows of the content line at screen row y.
func (m Model) rowAt(y int) (int, bool) {
	if y < contentTop || y >= contentTop+m.viewport.Height {
		return 0, false
	}
	idx := y - contentTop + m.viewport.YOffset
	if idx < 0 || idx >= len(m.rows) {
		return 0, false
	}
	return idx, true
}

// classifyClick maps a left click at screen cell (x, y) to a target. The
// second result is the clicked item row, or -1.
func (m Model) classifyClick(x, y int) (tabs.Target, int) {
	if m.session.Popup.Open {
		g := layoutPopup(m.width, m.height)
		return tabs.Target{Kind: g.classify(x, y)}, -1
	}

	if y == tabBarRow {
		for _, span := range m.tabSpans() {
			if x >= span.x0 && x <= span.x1 {
				return tabs.Target{Kind: tabs.TargetTab, Tab: span.tab}, -1
			}
		}
		return tabs.Target{}, -1
	}

	idx, ok := m.rowAt(y)
	if !ok || m.rows[idx].kind != rowItem {
		return tabs.Target{}, -1
	}
	r := m.rows[idx]
	n := r.node
	g := layoutRow(r)
	cx := x - contentLeft
	target := tabs.Target{Tab: m.session.Active, Handle: n.Handle}

	switch {
	case g.starX >= 0 && cx >= g.starX && cx < g.starX+starWidth:
		target.Kind = tabs.TargetStar
	case g.hasThumb && cx >= g.thumb.X && cx <= g.thumb.X+g.thumb.W:
		target.Kind = tabs.TargetThumbnail
	case n.Expandable && cx >= g.markerX && (cx < g.markerX+markerWidth || cx >= g.titleX):
		target.Kind = tabs.TargetExpand
	}
	return target, idx
}

// classifyMotion maps a pointer position to the photo row beneath it.
func (m Model) classifyMotion(x, y int) tabs.Pointer {
	p := tabs.Pointer{X: x, Y: y}
	if m.session.Popup.Open {
		return p
	}
	idx, ok := m.rowAt(y)
	if !ok || m.rows[idx].kind != rowItem {
		return p
	}
	r := m.rows[idx]
	if r.node.ID.Kind != catalog.KindPhoto {
		return p
	}
	g := layoutRow(r)
	if !g.hasThumb {
		return p
	}
	p.Handle = r.node.Handle
	p.Thumb = tabs.Rect{X: contentLeft + g.thumb.X, Y: y, W: g.thumb.W, H: g.thumb.H}
	return p
}
