package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/gallery/internal/state"
	"github.com/five82/gallery/internal/tabs"
)

func motion(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionMotion, Button: tea.MouseButtonNone}
}

func TestClassifyClick_Rows(t *testing.T) {
	m := started(t, galleryFetcher(nil), nil)
	m = openAlbum(t, m)

	// rows: user 1, album 7, photo 31, photo 32, user 2
	photoY := contentTop + 2
	tests := []struct {
		name   string
		x, y   int
		kind   tabs.TargetKind
		handle string
	}{
		{"user marker", contentLeft, contentTop, tabs.TargetExpand, "userId=1"},
		{"user title", contentLeft + 5, contentTop, tabs.TargetExpand, "userId=1"},
		{"album title", contentLeft + 6, contentTop + 1, tabs.TargetExpand, "albumId=7"},
		{"photo star", contentLeft + 6, photoY, tabs.TargetStar, "photoId=31"},
		{"photo thumbnail", contentLeft + 10, photoY, tabs.TargetThumbnail, "photoId=31"},
		{"photo title", contentLeft + 22, photoY, tabs.TargetNone, "photoId=31"},
		{"catalog tab", 2, tabBarRow, tabs.TargetTab, ""},
		{"header", 2, headerRow, tabs.TargetNone, ""},
		{"below rows", contentLeft, contentTop + 10, tabs.TargetNone, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _ := m.classifyClick(tt.x, tt.y)
			if got.Kind != tt.kind || got.Handle != tt.handle {
				t.Fatalf("classifyClick(%d, %d) = %v %q, want %v %q", tt.x, tt.y, got.Kind, got.Handle, tt.kind, tt.handle)
			}
		})
	}
}

func TestClassifyClick_FavoritesTab(t *testing.T) {
	m := newTestModel(t, galleryFetcher(nil), nil)
	spans := m.tabSpans()
	fav := spans[1]
	if fav.tab != state.TabFavorites {
		t.Fatalf("second span = %v, want favorites", fav.tab)
	}
	got, _ := m.classifyClick(fav.x0, tabBarRow)
	if got.Kind != tabs.TargetTab || got.Tab != state.TabFavorites {
		t.Fatalf("classifyClick = %+v, want favorites tab", got)
	}
	if got, _ := m.classifyClick(fav.x0-1, tabBarRow); got.Kind != tabs.TargetNone {
		t.Fatalf("gap between tabs classified as %v", got.Kind)
	}
}

func TestClickSelectsRow(t *testing.T) {
	m := started(t, galleryFetcher(nil), nil)
	m = click(t, m, contentLeft+22, contentTop+1)
	if n, _ := m.selected(); n.Handle != "userId=2" {
		t.Fatalf("selected = %s, want userId=2", n.Handle)
	}
}

func TestPopupGeometry_Classify(t *testing.T) {
	g := layoutPopup(100, 30)
	if g.x0 != 18 || g.y0 != 6 || g.w != popupWidth {
		t.Fatalf("popup origin = (%d, %d) w=%d", g.x0, g.y0, g.w)
	}
	tests := []struct {
		name string
		x, y int
		want tabs.TargetKind
	}{
		{"close control", g.close.X + 1, g.close.Y, tabs.TargetPopupClose},
		{"image", g.image.X, g.image.Y, tabs.TargetPopupImage},
		{"title", g.image.X, g.close.Y, tabs.TargetPopupBackdrop},
		{"outside", 0, 0, tabs.TargetPopupBackdrop},
		{"below image", g.image.X, g.image.Y + g.image.H + 1, tabs.TargetPopupBackdrop},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := g.classify(tt.x, tt.y); got != tt.want {
				t.Fatalf("classify(%d, %d) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestMotion_PositionsCaption(t *testing.T) {
	m := started(t, galleryFetcher(nil), nil)
	m = openAlbum(t, m)
	photoY := contentTop + 2

	m = update(t, m, motion(contentLeft+12, photoY))
	c := m.session.Caption
	if !c.Visible || c.Handle != "photoId=31" {
		t.Fatalf("caption = %+v, want visible for photoId=31", c)
	}
	if c.X != contentLeft+12 || c.Y != photoY+tabs.CaptionOffset {
		t.Fatalf("caption at (%d, %d)", c.X, c.Y)
	}

	// the title is past the tolerance, so the caption stays put
	m = update(t, m, motion(contentLeft+40, photoY))
	if got := m.session.Caption; !got.Visible || got.X != c.X {
		t.Fatalf("caption moved outside tolerance: %+v", got)
	}

	m = update(t, m, motion(contentLeft+2, contentTop))
	if m.session.Caption.Visible {
		t.Fatalf("caption still visible over a user row")
	}
}
