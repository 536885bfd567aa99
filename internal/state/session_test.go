package state

import (
	"testing"

	"github.com/five82/gallery/internal/catalog"
	"github.com/five82/gallery/internal/indicator"
	"github.com/five82/gallery/internal/listing"
)

func TestNewSession_Defaults(t *testing.T) {
	s := NewSession(listing.DefaultTemplates(), nil)
	if s.Favorites == nil || s.Favorites.Size() != 0 {
		t.Fatalf("expected empty favorites store")
	}
	if s.Active != TabCatalog {
		t.Fatalf("Active = %v, want Catalog", s.Active)
	}
	if s.Container(TabFavorites) != s.FavoritesTab || s.Container(TabCatalog) != s.Catalog {
		t.Fatalf("Container returned the wrong block")
	}
	if s.Popup.Indicator == nil {
		t.Fatalf("popup indicator not initialised")
	}
}

func TestSession_ClosePopupKeepsIndicator(t *testing.T) {
	s := NewSession(listing.DefaultTemplates(), nil)
	ind := s.Popup.Indicator
	s.Popup.Open = true
	s.Popup.Photo = catalog.NewID(catalog.KindPhoto, 3)
	ind.Fail(indicator.LoadFailed)

	s.ClosePopup()

	if s.Popup.Open || !s.Popup.Photo.IsZero() {
		t.Fatalf("popup still open: %+v", s.Popup)
	}
	if s.Popup.Indicator != ind || ind.Visible() {
		t.Fatalf("indicator replaced or still visible")
	}
}

func TestTab_String(t *testing.T) {
	if TabCatalog.String() != "Catalog" || TabFavorites.String() != "Favorites" {
		t.Fatalf("tab names = %q, %q", TabCatalog, TabFavorites)
	}
}
