package state

import (
	"github.com/five82/gallery/internal/catalog"
	"github.com/five82/gallery/internal/favorites"
	"github.com/five82/gallery/internal/indicator"
	"github.com/five82/gallery/internal/listing"
)

// Tab identifies a tab block.
type Tab int

const (
	TabCatalog Tab = iota
	TabFavorites
)

// Tabs lists the tab blocks in display order.
var Tabs = []Tab{TabCatalog, TabFavorites}

func (t Tab) String() string {
	switch t {
	case TabFavorites:
		return "Favorites"
	default:
		return "Catalog"
	}
}

// Popup is the lightbox showing one full-size photo.
type Popup struct {
	Open      bool
	Photo     catalog.ID
	Title     string
	URL       string
	Image     *catalog.ImageInfo
	Indicator *indicator.Indicator
	// Load collects the full-image probe of this opening. Nil until the
	// photo fetch returns.
	Load *listing.Barrier
}

// Caption is the floating title shown while the pointer is over a thumbnail.
type Caption struct {
	Visible bool
	Handle  string
	Text    string
	X, Y    int
}

// Session is the shared application context.
type Session struct {
	Templates listing.Templates
	Favorites *favorites.Store
	Renderer  *listing.Renderer

	Catalog      *listing.Container
	FavoritesTab *listing.Container
	Active       Tab

	Popup   Popup
	Caption Caption
}

// NewSession builds a session around favs. A nil store starts empty.
func NewSession(templates listing.Templates, favs *favorites.Store) *Session {
	if favs == nil {
		favs = favorites.New()
	}
	return &Session{
		Templates:    templates,
		Favorites:    favs,
		Renderer:     listing.NewRenderer(listing.NewRegistry()),
		Catalog:      listing.NewContainer(),
		FavoritesTab: listing.NewContainer(),
		Active:       TabCatalog,
		Popup:        Popup{Indicator: indicator.New()},
	}
}

// Container returns the block of tab t.
func (s *Session) Container(t Tab) *listing.Container {
	if t == TabFavorites {
		return s.FavoritesTab
	}
	return s.Catalog
}

// Lookup finds a rendered node by handle.
func (s *Session) Lookup(handle string) (*listing.Node, bool) {
	return s.Renderer.Registry().Lookup(handle)
}

// ClosePopup hides the popup and drops its image.
func (s *Session) ClosePopup() {
	s.Popup = Popup{Indicator: s.Popup.Indicator}
	s.Popup.Indicator.Hide()
}
