package tabs

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/five82/gallery/internal/catalog"
	"github.com/five82/gallery/internal/favorites"
	"github.com/five82/gallery/internal/indicator"
	"github.com/five82/gallery/internal/listing"
	"github.com/five82/gallery/internal/state"
)

// CaptionTolerance is how far outside a thumbnail the pointer may be while
// still positioning the caption.
const CaptionTolerance = 2

// CaptionOffset is the number of rows the caption sits below the pointer.
const CaptionOffset = 1

type handler func(*Controller, Target) []Request

// Controller routes classified events to list loads, favorite toggles and
// the popup.
type Controller struct {
	session  *state.Session
	logger   *log.Logger
	dispatch map[TargetKind]handler
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the logger used for dispatch and load outcomes.
func WithLogger(l *log.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.logger = l
		}
	}
}

// New binds a controller to s and installs the favorites reconciliation
// hooks on its store.
func New(s *state.Session, opts ...Option) *Controller {
	c := &Controller{
		session: s,
		logger:  log.New(io.Discard),
		dispatch: map[TargetKind]handler{
			TargetTab:           (*Controller).selectTab,
			TargetExpand:        (*Controller).toggleExpand,
			TargetStar:          (*Controller).toggleStar,
			TargetThumbnail:     (*Controller).openPopup,
			TargetPopupClose:    (*Controller).closePopup,
			TargetPopupBackdrop: (*Controller).closePopup,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	s.Favorites.SetHooks(favoritesHooks(s))
	return c
}

// Session returns the bound application context.
func (c *Controller) Session() *state.Session {
	return c.session
}

// Start issues the initial users load into the catalog tab.
func (c *Controller) Start() []Request {
	tab := c.session.Catalog
	tab.Indicator.Start()
	return []Request{{
		Query:     catalog.UsersQuery(),
		Container: tab,
		Template:  c.session.Templates.Users,
	}}
}

// Handle dispatches one classified event. Unknown targets are ignored.
func (c *Controller) Handle(t Target) []Request {
	h, ok := c.dispatch[t.Kind]
	if !ok {
		return nil
	}
	c.logger.Debug("dispatch", "target", t.Kind, "handle", t.Handle, "tab", t.Tab)
	return h(c, t)
}

// Complete applies a finished fetch. It returns the completion probes the
// caller must run and feed back through Settle.
func (c *Controller) Complete(req Request, records []catalog.Record, err error) []listing.Probe {
	if req.Popup {
		return c.completePopup(req, records, err)
	}

	if err != nil {
		c.logger.Warn("list load failed", "query", req.Query.String(), "err", err)
		if req.Container.Indicator != nil {
			req.Container.Indicator.Fail(indicator.LoadFailed)
		}
		return nil
	}

	pass := c.session.Renderer.Render(req.Template, records, req.Container, c.session.Favorites, req.Options)
	c.logger.Debug("list rendered", "list", req.Template.Name, "items", len(records), "probes", len(pass.Probes))
	if req.Options.Favorites && c.session.Favorites.Size() == 0 {
		showEmptyFavorites(c.session)
	}
	return pass.Probes
}

// Settle feeds one probe outcome back into its barrier.
func (c *Controller) Settle(p listing.Probe, info catalog.ImageInfo, err error) {
	if err != nil {
		c.logger.Debug("image load failed", "url", p.URL, "err", err)
	}
	if p.Node == nil {
		popup := &c.session.Popup
		// Only the probe of the popup on screen may settle its indicator.
		if popup.Load == nil || !p.Feeds(popup.Load) {
			c.logger.Debug("stale popup image dropped", "url", p.URL)
			return
		}
		if err == nil {
			img := info
			popup.Image = &img
		}
	}
	p.Settle(info, err)
}

// Move positions the floating caption when the pointer is over a photo
// thumbnail, within CaptionTolerance cells of its box.
func (c *Controller) Move(p Pointer) {
	caption := &c.session.Caption
	if p.Handle == "" {
		caption.Visible = false
		return
	}
	n, ok := c.session.Lookup(p.Handle)
	if !ok || n.ID.Kind != catalog.KindPhoto {
		caption.Visible = false
		return
	}
	if !p.Thumb.Contains(p.X, p.Y, CaptionTolerance) {
		return
	}
	*caption = state.Caption{
		Visible: true,
		Handle:  n.Handle,
		Text:    n.Title,
		X:       p.X,
		Y:       p.Y + CaptionOffset,
	}
}

func (c *Controller) selectTab(t Target) []Request {
	s := c.session
	if t.Tab == s.Active {
		return nil
	}
	s.Active = t.Tab
	s.Caption.Visible = false
	tab := s.FavoritesTab
	if t.Tab != state.TabFavorites || tab.Populated || tab.Indicator.Spinning() {
		return nil
	}
	return c.loadFavorites()
}

// loadFavorites fetches the favorite photos into the favorites tab. An empty
// set never issues a request.
func (c *Controller) loadFavorites() []Request {
	s := c.session
	tab := s.FavoritesTab
	opts := listing.Options{Favorites: true}
	if s.Favorites.Size() == 0 {
		s.Renderer.Render(s.Templates.Photos, nil, tab, s.Favorites, opts)
		showEmptyFavorites(s)
		return nil
	}
	tab.Indicator.Start()
	return []Request{{
		Query:     catalog.PhotosByIDsQuery(s.Favorites.QueryFragment()),
		Container: tab,
		Template:  s.Templates.Photos,
		Options:   opts,
	}}
}

func (c *Controller) toggleExpand(t Target) []Request {
	s := c.session
	n, ok := s.Lookup(t.Handle)
	if !ok || !n.Expandable {
		return nil
	}
	n.Expanded = !n.Expanded
	if n.Populated || !n.Expanded {
		return nil
	}
	// A load already in flight settles this container on its own.
	if n.Indicator != nil && n.Indicator.Spinning() {
		return nil
	}

	tmpl, ok := s.Templates.ChildOf(n.ID.Kind)
	if !ok {
		return nil
	}
	var q catalog.Query
	switch n.ID.Kind {
	case catalog.KindUser:
		q = catalog.AlbumsQuery(n.ID)
	case catalog.KindAlbum:
		q = catalog.PhotosQuery(n.ID)
	}
	if n.Indicator == nil {
		n.Indicator = indicator.New()
	}
	n.Indicator.Start()
	return []Request{{Query: q, Container: &n.Container, Template: tmpl}}
}

func (c *Controller) toggleStar(t Target) []Request {
	n, ok := c.session.Lookup(t.Handle)
	if !ok || !n.Star {
		return nil
	}
	n.Active = !n.Active
	if n.Active {
		c.addFavorite(n)
	} else {
		c.removeFavorite(n)
	}
	return nil
}

func (c *Controller) addFavorite(n *listing.Node) {
	s := c.session
	if !s.Favorites.Add(n.ID) {
		return
	}
	c.logger.Info("favorite added", "id", n.ID.String())
	tab := s.FavoritesTab
	if tab.List == nil {
		return
	}
	if _, exists := s.Renderer.Registry().LookupID(n.ID, true); exists {
		return
	}
	clone := s.Renderer.Clone(n, true)
	clone.Active = true
	s.Renderer.Append(tab, clone)
}

func (c *Controller) removeFavorite(n *listing.Node) {
	s := c.session
	if original, ok := s.Renderer.Registry().LookupID(n.ID, false); ok {
		original.Active = false
	}
	if s.FavoritesTab.List != nil {
		s.Renderer.Detach(s.FavoritesTab, listing.HandleID(n.ID, true))
	}
	if s.Caption.Handle == listing.HandleID(n.ID, true) {
		s.Caption.Visible = false
	}
	if s.Favorites.Remove(n.ID) {
		c.logger.Info("favorite removed", "id", n.ID.String())
	}
}

func (c *Controller) openPopup(t Target) []Request {
	s := c.session
	n, ok := s.Lookup(t.Handle)
	if !ok || n.ID.Kind != catalog.KindPhoto {
		return nil
	}
	s.Popup = state.Popup{
		Open:      true,
		Photo:     n.ID,
		Title:     n.Title,
		Indicator: s.Popup.Indicator,
	}
	s.Popup.Indicator.Start()
	return []Request{{
		Query: catalog.PhotoQuery(n.ID.Value),
		Popup: true,
		Photo: n.ID,
	}}
}

func (c *Controller) closePopup(Target) []Request {
	c.session.ClosePopup()
	return nil
}

// completePopup loads the full image once the single-photo fetch returns.
// Responses that no longer match the open popup are dropped.
func (c *Controller) completePopup(req Request, records []catalog.Record, err error) []listing.Probe {
	popup := &c.session.Popup
	if !popup.Open || popup.Photo != req.Photo {
		c.logger.Debug("stale popup response dropped", "id", req.Photo.String())
		return nil
	}
	if err == nil && len(records) == 0 {
		err = &catalog.LoadError{Kind: catalog.ErrMissing, Message: req.Query.String(), Err: catalog.ErrNotFound}
	}
	if err != nil {
		c.logger.Warn("popup load failed", "id", req.Photo.String(), "err", err)
		popup.Indicator.Fail(indicator.LoadFailed)
		return nil
	}

	photo, ok := records[0].(catalog.Photo)
	if !ok || photo.URL == "" {
		popup.Indicator.Fail(indicator.LoadFailed)
		return nil
	}
	popup.URL = photo.URL
	popup.Title = photo.Title
	ind := popup.Indicator
	barrier := listing.NewBarrier(1, func(ok bool) {
		if ok {
			ind.Succeed()
			return
		}
		ind.Fail(indicator.LoadFailed)
	})
	popup.Load = barrier
	return []listing.Probe{listing.NewProbe(photo.URL, nil, barrier)}
}

func favoritesHooks(s *state.Session) favorites.Hooks {
	return favorites.Hooks{
		BecameNonEmpty: func() {
			tab := s.FavoritesTab
			if tab.List != nil {
				tab.List.Hidden = false
			}
			if tab.Indicator.State() == indicator.Empty {
				tab.Indicator.Hide()
			}
		},
		BecameEmpty: func() { showEmptyFavorites(s) },
	}
}

func showEmptyFavorites(s *state.Session) {
	tab := s.FavoritesTab
	if tab.List != nil {
		tab.List.Hidden = true
	}
	tab.Indicator.ShowEmpty(indicator.FavoritesEmpty)
}
