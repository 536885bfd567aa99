package tabs

import (
	"errors"
	"testing"

	"github.com/five82/gallery/internal/catalog"
	"github.com/five82/gallery/internal/favorites"
	"github.com/five82/gallery/internal/indicator"
	"github.com/five82/gallery/internal/listing"
	"github.com/five82/gallery/internal/state"
)

func newController(t *testing.T, favs *favorites.Store) *Controller {
	t.Helper()
	return New(state.NewSession(listing.DefaultTemplates(), favs))
}

func photo(id int64) catalog.Photo {
	return catalog.Photo{
		ID:           catalog.FlexInt(id),
		AlbumID:      1,
		Title:        "photo title",
		URL:          "http://img.test/full.png",
		ThumbnailURL: "http://img.test/thumb.png",
	}
}

func settleAll(c *Controller, probes []listing.Probe, err error) {
	for _, p := range probes {
		c.Settle(p, catalog.ImageInfo{URL: p.URL, Format: "png", Width: 150, Height: 150}, err)
	}
}

// loadUsers runs the initial users load with the given user ids.
func loadUsers(t *testing.T, c *Controller, ids ...int64) {
	t.Helper()
	reqs := c.Start()
	if len(reqs) != 1 || reqs[0].Query.String() != "/users/" {
		t.Fatalf("Start requests = %+v", reqs)
	}
	var users []catalog.Record
	for _, id := range ids {
		users = append(users, catalog.User{ID: catalog.FlexInt(id), Name: "user"})
	}
	c.Complete(reqs[0], users, nil)
}

func TestFavoritesTab_LoadsPersistedSet(t *testing.T) {
	favs, err := favorites.Deserialize(`["photoId=5"]`)
	if err != nil {
		t.Fatalf("Deserialize returned error: %v", err)
	}
	c := newController(t, favs)
	s := c.Session()

	reqs := c.Handle(Target{Kind: TargetTab, Tab: state.TabFavorites})
	if len(reqs) != 1 {
		t.Fatalf("requests = %d, want 1", len(reqs))
	}
	if got, want := reqs[0].Query.String(), "/photos?id=5&"; got != want {
		t.Fatalf("query = %q, want %q", got, want)
	}
	if s.FavoritesTab.Indicator.State() != indicator.Pending {
		t.Fatalf("favorites indicator = %v, want pending", s.FavoritesTab.Indicator.State())
	}

	probes := c.Complete(reqs[0], []catalog.Record{photo(5)}, nil)
	settleAll(c, probes, nil)

	list := s.FavoritesTab.List
	if list.Len() != 1 {
		t.Fatalf("favorites list len = %d, want 1", list.Len())
	}
	n := list.Nodes[0]
	if n.Handle != listing.FavoritePrefix+"photoId=5" || !n.Active || !n.Star {
		t.Fatalf("node = %+v", n)
	}
	if s.FavoritesTab.Indicator.State() != indicator.Success {
		t.Fatalf("favorites indicator = %v, want success", s.FavoritesTab.Indicator.State())
	}

	// Reselecting the tab does not reload.
	c.Handle(Target{Kind: TargetTab, Tab: state.TabCatalog})
	if reqs := c.Handle(Target{Kind: TargetTab, Tab: state.TabFavorites}); len(reqs) != 0 {
		t.Fatalf("populated favorites tab reloaded: %+v", reqs)
	}
}

func TestFavoritesTab_EmptySetNeverFetches(t *testing.T) {
	c := newController(t, favorites.New())
	s := c.Session()

	if reqs := c.Handle(Target{Kind: TargetTab, Tab: state.TabFavorites}); len(reqs) != 0 {
		t.Fatalf("empty favorites issued requests: %+v", reqs)
	}
	msg, ok := s.FavoritesTab.Indicator.Message()
	if !ok || msg != indicator.FavoritesEmpty {
		t.Fatalf("message = %+v, %v; want favorites empty", msg, ok)
	}
	if s.FavoritesTab.Indicator.State() != indicator.Empty || s.FavoritesTab.Indicator.Spinning() {
		t.Fatalf("indicator = %v spinning=%v", s.FavoritesTab.Indicator.State(), s.FavoritesTab.Indicator.Spinning())
	}
}

func TestFavoritesTab_PendingLoadNotReissued(t *testing.T) {
	favs := favorites.New(catalog.NewID(catalog.KindPhoto, 4))
	c := newController(t, favs)
	s := c.Session()
	loadUsers(t, c, 1)

	first := c.Handle(Target{Kind: TargetTab, Tab: state.TabFavorites})
	if len(first) != 1 {
		t.Fatalf("first switch requests = %d, want 1", len(first))
	}
	c.Handle(Target{Kind: TargetTab, Tab: state.TabCatalog})
	if again := c.Handle(Target{Kind: TargetTab, Tab: state.TabFavorites}); len(again) != 0 {
		t.Fatalf("switch back during load issued %d requests", len(again))
	}

	settleAll(c, c.Complete(first[0], []catalog.Record{photo(4)}, nil), nil)
	if !s.FavoritesTab.Populated || s.FavoritesTab.Indicator.State() != indicator.Success {
		t.Fatalf("favorites tab populated=%v state=%v", s.FavoritesTab.Populated, s.FavoritesTab.Indicator.State())
	}
}

func TestFavoritesTab_RetriedAfterFailure(t *testing.T) {
	favs := favorites.New(catalog.NewID(catalog.KindPhoto, 4))
	c := newController(t, favs)
	loadUsers(t, c, 1)

	first := c.Handle(Target{Kind: TargetTab, Tab: state.TabFavorites})
	c.Complete(first[0], nil, &catalog.LoadError{Kind: catalog.ErrTimeout})
	c.Handle(Target{Kind: TargetTab, Tab: state.TabCatalog})
	if again := c.Handle(Target{Kind: TargetTab, Tab: state.TabFavorites}); len(again) != 1 {
		t.Fatalf("switch back after failure issued %d requests, want 1", len(again))
	}
}

func TestTabClick_ActiveTabIsNoop(t *testing.T) {
	c := newController(t, nil)
	if reqs := c.Handle(Target{Kind: TargetTab, Tab: state.TabCatalog}); reqs != nil {
		t.Fatalf("active tab click returned %+v", reqs)
	}
	if c.Session().Active != state.TabCatalog {
		t.Fatalf("active tab changed")
	}
}

func TestExpand_TimeoutOnlyAffectsThatRow(t *testing.T) {
	c := newController(t, nil)
	s := c.Session()
	loadUsers(t, c, 1, 2, 3)

	first := c.Handle(Target{Kind: TargetExpand, Handle: "userId=1"})
	second := c.Handle(Target{Kind: TargetExpand, Handle: "userId=2"})
	if len(first) != 1 || len(second) != 1 {
		t.Fatalf("expand requests = %d, %d", len(first), len(second))
	}
	if got, want := second[0].Query.String(), "/albums?userId=2"; got != want {
		t.Fatalf("query = %q, want %q", got, want)
	}

	timeout := &catalog.LoadError{Kind: catalog.ErrTimeout, Message: "GET /albums?userId=2", Err: errors.New("deadline exceeded")}
	c.Complete(second[0], nil, timeout)

	u1, _ := s.Lookup("userId=1")
	u2, _ := s.Lookup("userId=2")
	u3, _ := s.Lookup("userId=3")
	if u2.Indicator.State() != indicator.Error {
		t.Fatalf("user 2 indicator = %v, want error", u2.Indicator.State())
	}
	if msg, _ := u2.Indicator.Message(); msg != indicator.LoadFailed {
		t.Fatalf("user 2 message = %+v", msg)
	}
	if u1.Indicator.State() != indicator.Pending {
		t.Fatalf("user 1 indicator = %v, want pending", u1.Indicator.State())
	}
	if u3.Indicator.State() != indicator.Idle {
		t.Fatalf("user 3 indicator = %v, want idle", u3.Indicator.State())
	}
	if s.Catalog.Indicator.State() != indicator.Success {
		t.Fatalf("catalog indicator = %v, want success", s.Catalog.Indicator.State())
	}

	c.Complete(first[0], []catalog.Record{catalog.Album{ID: 10, UserID: 1, Title: "a"}}, nil)
	if u1.Indicator.State() != indicator.Success || u1.List.Len() != 1 {
		t.Fatalf("user 1 after completion: %v len=%d", u1.Indicator.State(), u1.List.Len())
	}
	if u2.Populated {
		t.Fatalf("failed row marked populated")
	}
}

func TestExpand_LoadsOnlyOnce(t *testing.T) {
	c := newController(t, nil)
	loadUsers(t, c, 1)

	reqs := c.Handle(Target{Kind: TargetExpand, Handle: "userId=1"})
	if len(reqs) != 1 {
		t.Fatalf("first expand requests = %d, want 1", len(reqs))
	}
	c.Complete(reqs[0], []catalog.Record{catalog.Album{ID: 3, UserID: 1, Title: "a"}}, nil)

	if reqs := c.Handle(Target{Kind: TargetExpand, Handle: "userId=1"}); len(reqs) != 0 {
		t.Fatalf("collapse issued requests")
	}
	if reqs := c.Handle(Target{Kind: TargetExpand, Handle: "userId=1"}); len(reqs) != 0 {
		t.Fatalf("re-expand issued requests")
	}
	u, _ := c.Session().Lookup("userId=1")
	if !u.Expanded {
		t.Fatalf("user not expanded after third toggle")
	}

	albumReqs := c.Handle(Target{Kind: TargetExpand, Handle: "albumId=3"})
	if len(albumReqs) != 1 || albumReqs[0].Query.String() != "/photos?albumId=3" {
		t.Fatalf("album expand requests = %+v", albumReqs)
	}
}

// openAlbum loads user 1, album 1 and its photos into the catalog tab.
func openAlbum(t *testing.T, c *Controller, ids ...int64) {
	t.Helper()
	loadUsers(t, c, 1)
	reqs := c.Handle(Target{Kind: TargetExpand, Handle: "userId=1"})
	c.Complete(reqs[0], []catalog.Record{catalog.Album{ID: 1, UserID: 1, Title: "a"}}, nil)
	reqs = c.Handle(Target{Kind: TargetExpand, Handle: "albumId=1"})
	var recs []catalog.Record
	for _, id := range ids {
		recs = append(recs, photo(id))
	}
	settleAll(c, c.Complete(reqs[0], recs, nil), nil)
}

func TestStar_TogglesFavoritesAndClones(t *testing.T) {
	c := newController(t, nil)
	s := c.Session()
	openAlbum(t, c, 7, 8)

	// Open the favorites tab while empty so it is populated.
	c.Handle(Target{Kind: TargetTab, Tab: state.TabFavorites})
	c.Handle(Target{Kind: TargetTab, Tab: state.TabCatalog})

	c.Handle(Target{Kind: TargetStar, Handle: "photoId=7"})
	if !s.Favorites.Contains(catalog.NewID(catalog.KindPhoto, 7)) {
		t.Fatalf("photo 7 not favorited")
	}
	if s.FavoritesTab.List.Len() != 1 || s.FavoritesTab.List.Hidden {
		t.Fatalf("favorites list len=%d hidden=%v", s.FavoritesTab.List.Len(), s.FavoritesTab.List.Hidden)
	}
	if s.FavoritesTab.Indicator.Visible() {
		t.Fatalf("empty message still visible after add")
	}

	// Unstar from the favorites tab clears the catalog star too.
	c.Handle(Target{Kind: TargetStar, Handle: "fav_photoId=7"})
	original, _ := s.Lookup("photoId=7")
	if original.Active {
		t.Fatalf("catalog node still active")
	}
	if s.Favorites.Size() != 0 || s.FavoritesTab.List.Len() != 0 {
		t.Fatalf("favorites not emptied")
	}
	if s.FavoritesTab.Indicator.State() != indicator.Empty {
		t.Fatalf("favorites indicator = %v, want empty", s.FavoritesTab.Indicator.State())
	}

	// Re-adding after emptying appends a clone without reloading the tab.
	c.Handle(Target{Kind: TargetStar, Handle: "photoId=8"})
	if s.FavoritesTab.List.Len() != 1 || s.FavoritesTab.List.Nodes[0].Handle != "fav_photoId=8" {
		t.Fatalf("favorites list after re-add = %+v", s.FavoritesTab.List.Nodes)
	}
	c.Handle(Target{Kind: TargetTab, Tab: state.TabFavorites})
	if reqs := c.Handle(Target{Kind: TargetTab, Tab: state.TabFavorites}); len(reqs) != 0 {
		t.Fatalf("favorites tab reloaded")
	}
}

func TestStar_BeforeFavoritesTabExists(t *testing.T) {
	c := newController(t, nil)
	s := c.Session()
	openAlbum(t, c, 4)

	c.Handle(Target{Kind: TargetStar, Handle: "photoId=4"})
	if s.FavoritesTab.List != nil {
		t.Fatalf("favorites list created before the tab was opened")
	}
	reqs := c.Handle(Target{Kind: TargetTab, Tab: state.TabFavorites})
	if len(reqs) != 1 || reqs[0].Query.String() != "/photos?id=4&" {
		t.Fatalf("favorites requests = %+v", reqs)
	}
}

func TestPopup_OpenLoadClose(t *testing.T) {
	c := newController(t, nil)
	s := c.Session()
	openAlbum(t, c, 9)

	reqs := c.Handle(Target{Kind: TargetThumbnail, Handle: "photoId=9"})
	if len(reqs) != 1 || !reqs[0].Popup || reqs[0].Query.String() != "/photos?id=9" {
		t.Fatalf("popup requests = %+v", reqs)
	}
	if !s.Popup.Open || s.Popup.Indicator.State() != indicator.Pending {
		t.Fatalf("popup = %+v", s.Popup)
	}

	probes := c.Complete(reqs[0], []catalog.Record{photo(9)}, nil)
	if len(probes) != 1 || probes[0].URL != "http://img.test/full.png" {
		t.Fatalf("popup probes = %+v", probes)
	}
	settleAll(c, probes, nil)
	if s.Popup.Image == nil || s.Popup.Indicator.State() != indicator.Success {
		t.Fatalf("popup after load = %+v", s.Popup)
	}

	c.Handle(Target{Kind: TargetPopupImage})
	if !s.Popup.Open {
		t.Fatalf("click on image closed the popup")
	}
	c.Handle(Target{Kind: TargetPopupBackdrop})
	if s.Popup.Open || s.Popup.Image != nil {
		t.Fatalf("popup still open after backdrop click")
	}
}

func TestPopup_Failures(t *testing.T) {
	tests := []struct {
		name     string
		records  []catalog.Record
		fetchErr error
		probeErr error
	}{
		{name: "fetch error", fetchErr: &catalog.LoadError{Kind: catalog.ErrHTTPStatus, StatusCode: 500}},
		{name: "empty response"},
		{name: "image error", records: []catalog.Record{photo(9)}, probeErr: errors.New("broken image")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newController(t, nil)
			s := c.Session()
			openAlbum(t, c, 9)

			reqs := c.Handle(Target{Kind: TargetThumbnail, Handle: "photoId=9"})
			settleAll(c, c.Complete(reqs[0], tt.records, tt.fetchErr), tt.probeErr)
			if s.Popup.Indicator.State() != indicator.Error {
				t.Fatalf("popup indicator = %v, want error", s.Popup.Indicator.State())
			}
		})
	}
}

func TestPopup_StaleResponseDropped(t *testing.T) {
	c := newController(t, nil)
	s := c.Session()
	openAlbum(t, c, 1, 2)

	first := c.Handle(Target{Kind: TargetThumbnail, Handle: "photoId=1"})
	c.Handle(Target{Kind: TargetPopupClose})
	c.Handle(Target{Kind: TargetThumbnail, Handle: "photoId=2"})

	if probes := c.Complete(first[0], []catalog.Record{photo(1)}, nil); len(probes) != 0 {
		t.Fatalf("stale popup response produced probes")
	}
	if s.Popup.Photo != catalog.NewID(catalog.KindPhoto, 2) || s.Popup.URL != "" {
		t.Fatalf("popup = %+v", s.Popup)
	}
}

func TestPopup_LateImageDoesNotSettleNextPopup(t *testing.T) {
	tests := []struct {
		name     string
		probeErr error
	}{
		{name: "late success"},
		{name: "late failure", probeErr: errors.New("broken image")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newController(t, nil)
			s := c.Session()
			openAlbum(t, c, 1, 2)

			first := c.Handle(Target{Kind: TargetThumbnail, Handle: "photoId=1"})
			probes := c.Complete(first[0], []catalog.Record{photo(1)}, nil)
			if len(probes) != 1 {
				t.Fatalf("popup probes = %d, want 1", len(probes))
			}
			c.Handle(Target{Kind: TargetPopupClose})
			second := c.Handle(Target{Kind: TargetThumbnail, Handle: "photoId=2"})

			settleAll(c, probes, tt.probeErr)
			if st := s.Popup.Indicator.State(); st != indicator.Pending || !s.Popup.Indicator.Spinning() {
				t.Fatalf("second popup indicator = %v, want pending while its fetch is in flight", st)
			}
			if s.Popup.Image != nil {
				t.Fatalf("second popup took the first popup's image")
			}

			settleAll(c, c.Complete(second[0], []catalog.Record{photo(2)}, nil), nil)
			if st := s.Popup.Indicator.State(); st != indicator.Success {
				t.Fatalf("second popup indicator = %v, want success", st)
			}
		})
	}
}

func TestPopup_ImageAfterCloseIsDropped(t *testing.T) {
	c := newController(t, nil)
	s := c.Session()
	openAlbum(t, c, 1)

	reqs := c.Handle(Target{Kind: TargetThumbnail, Handle: "photoId=1"})
	probes := c.Complete(reqs[0], []catalog.Record{photo(1)}, nil)
	c.Handle(Target{Kind: TargetPopupClose})

	settleAll(c, probes, nil)
	if s.Popup.Open || s.Popup.Image != nil {
		t.Fatalf("closed popup changed: %+v", s.Popup)
	}
	if s.Popup.Indicator.Visible() {
		t.Fatalf("closed popup indicator visible in state %v", s.Popup.Indicator.State())
	}
}

func TestMove_CaptionTolerance(t *testing.T) {
	c := newController(t, nil)
	s := c.Session()
	openAlbum(t, c, 3)
	thumb := Rect{X: 10, Y: 5, W: 8, H: 3}

	tests := []struct {
		name    string
		x, y    int
		handle  string
		visible bool
	}{
		{name: "inside", x: 12, y: 6, handle: "photoId=3", visible: true},
		{name: "within tolerance", x: 8, y: 10, handle: "photoId=3", visible: true},
		{name: "outside tolerance", x: 7, y: 6, handle: "photoId=3", visible: false},
		{name: "not a photo", x: 12, y: 6, handle: "userId=1", visible: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s.Caption = state.Caption{}
			c.Move(Pointer{X: tt.x, Y: tt.y, Handle: tt.handle, Thumb: thumb})
			if s.Caption.Visible != tt.visible {
				t.Fatalf("caption visible = %v, want %v", s.Caption.Visible, tt.visible)
			}
			if tt.visible && (s.Caption.X != tt.x || s.Caption.Y != tt.y+CaptionOffset || s.Caption.Text != "photo title") {
				t.Fatalf("caption = %+v", s.Caption)
			}
		})
	}
}

func TestRect_Contains(t *testing.T) {
	r := Rect{X: 0, Y: 0, W: 4, H: 2}
	if !r.Contains(-2, -2, 2) || !r.Contains(6, 4, 2) {
		t.Fatalf("tolerance edges rejected")
	}
	if r.Contains(-3, 0, 2) || r.Contains(0, 5, 2) {
		t.Fatalf("points outside tolerance accepted")
	}
}

func TestExpand_PendingLoadNotReissued(t *testing.T) {
	c := newController(t, nil)
	loadUsers(t, c, 1)

	reqs := c.Handle(Target{Kind: TargetExpand, Handle: "userId=1"})
	if len(reqs) != 1 {
		t.Fatalf("first expand requests = %d, want 1", len(reqs))
	}
	c.Handle(Target{Kind: TargetExpand, Handle: "userId=1"})
	if again := c.Handle(Target{Kind: TargetExpand, Handle: "userId=1"}); len(again) != 0 {
		t.Fatalf("re-expand while pending issued %d requests", len(again))
	}

	c.Complete(reqs[0], nil, &catalog.LoadError{Kind: catalog.ErrNetwork, Err: errors.New("refused")})
	c.Handle(Target{Kind: TargetExpand, Handle: "userId=1"})
	if retry := c.Handle(Target{Kind: TargetExpand, Handle: "userId=1"}); len(retry) != 1 {
		t.Fatalf("re-expand after failure issued %d requests, want 1", len(retry))
	}
}
