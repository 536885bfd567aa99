package listing

import (
	"github.com/five82/gallery/internal/catalog"
	"github.com/five82/gallery/internal/indicator"
)

// Membership is the view of the favorite set the renderer needs.
type Membership interface {
	Contains(id catalog.ID) bool
	Size() int
}

// Options tweak a single render.
type Options struct {
	// Favorites renders into the favorites tab: handles get FavoritePrefix
	// and every photo is shown active.
	Favorites bool
}

// Probe is one pending completion signal of a render.
type Probe struct {
	URL  string
	Node *Node

	barrier *Barrier
}

// NewProbe ties a signal for url to barrier. n may be nil.
func NewProbe(url string, n *Node, b *Barrier) Probe {
	return Probe{URL: url, Node: n, barrier: b}
}

// Feeds reports whether the probe signals b.
func (p Probe) Feeds(b *Barrier) bool {
	return p.barrier == b
}

// Settle records the outcome of the probe on its node and barrier.
func (p Probe) Settle(info catalog.ImageInfo, err error) {
	if p.Node != nil {
		if err != nil {
			p.Node.ImageLost = true
		} else {
			img := info
			p.Node.Image = &img
			p.Node.ImageLost = false
		}
	}
	if p.barrier != nil {
		p.barrier.Done(err == nil)
	}
}

// Pass is the result of one Render call.
type Pass struct {
	Template  *Template
	Container *Container
	List      *List
	Barrier   *Barrier
	Probes    []Probe
}

// Renderer builds lists into containers and keeps the handle registry.
type Renderer struct {
	registry *Registry
}

// NewRenderer returns a renderer registering nodes in reg.
func NewRenderer(reg *Registry) *Renderer {
	if reg == nil {
		reg = NewRegistry()
	}
	return &Renderer{registry: reg}
}

// Registry returns the handle registry.
func (r *Renderer) Registry() *Registry {
	return r.registry
}

// Render builds a list of records into c, replacing any list it held.
// Without an Async policy the container indicator succeeds immediately;
// otherwise the returned probes must each be settled.
func (r *Renderer) Render(tmpl *Template, records []catalog.Record, c *Container, favs Membership, opts Options) *Pass {
	r.clear(c)

	list := &List{Template: tmpl, Classes: append([]string{tmpl.ContainerClassBase}, tmpl.ContainerClasses...)}
	c.List = list
	c.Populated = true

	pass := &Pass{Template: tmpl, Container: c, List: list}
	var signals []Probe
	for _, rec := range records {
		n := r.build(tmpl, rec, favs, opts)
		list.Nodes = append(list.Nodes, n)
		r.registry.register(n)

		if tmpl.Async == nil || tmpl.Async.Signal == nil {
			continue
		}
		if url, ok := tmpl.Async.Signal(rec, n); ok {
			signals = append(signals, Probe{URL: url, Node: n})
		}
	}

	if tmpl.Async == nil {
		SettleIndicator(c, true)
		return pass
	}

	settled := tmpl.Async.Settled
	if settled == nil {
		settled = SettleIndicator
	}
	pass.Barrier = NewBarrier(len(signals), func(ok bool) { settled(c, ok) })
	for i := range signals {
		signals[i].barrier = pass.Barrier
	}
	pass.Probes = signals
	return pass
}

// Clone copies a rendered photo into the favorites tab form (or back).
// Child lists are not copied and the copy is unregistered until Append.
func (r *Renderer) Clone(n *Node, favorite bool) *Node {
	return &Node{
		Handle:    HandleID(n.ID, favorite),
		ID:        n.ID,
		Favorite:  favorite,
		Classes:   append([]string(nil), n.Classes...),
		Record:    n.Record,
		Title:     n.Title,
		Thumbnail: n.Thumbnail,
		Star:      n.Star,
		Active:    n.Active,
		Image:     n.Image,
		ImageLost: n.ImageLost,
	}
}

// Append adds n to the list held by c and registers it. It reports false
// when c has no list.
func (r *Renderer) Append(c *Container, n *Node) bool {
	if c.List == nil {
		return false
	}
	c.List.Nodes = append(c.List.Nodes, n)
	r.registry.register(n)
	return true
}

// Detach removes the node with handle from c's list and the registry.
func (r *Renderer) Detach(c *Container, handle string) (*Node, bool) {
	i := c.List.Index(handle)
	if i < 0 {
		return nil, false
	}
	n := c.List.Nodes[i]
	c.List.Nodes = append(c.List.Nodes[:i], c.List.Nodes[i+1:]...)
	r.registry.forget(n)
	return n, true
}

func (r *Renderer) build(tmpl *Template, rec catalog.Record, favs Membership, opts Options) *Node {
	id := rec.Key()
	n := &Node{
		ID:       id,
		Handle:   HandleID(id, opts.Favorites),
		Favorite: opts.Favorites,
		Record:   rec,
		Classes:  append([]string{tmpl.ItemClass()}, tmpl.ItemClasses...),
	}
	if tmpl.ShowsLoadIndicator {
		n.Indicator = indicator.New()
	}

	for _, d := range tmpl.Decorators {
		if d.Apply == nil {
			continue
		}
		if d.Field == "" {
			d.Apply(rec, n)
			continue
		}
		v, _ := rec.Field(d.Field)
		d.Apply(v, n)
	}

	if opts.Favorites && id.Kind == catalog.KindPhoto {
		n.Active = true
	}
	if favs != nil && favs.Size() > 0 && favs.Contains(id) {
		n.Active = true
	}
	return n
}

func (r *Renderer) clear(c *Container) {
	if c.List == nil {
		return
	}
	for _, n := range c.List.Nodes {
		r.registry.forget(n)
	}
	c.List = nil
}
