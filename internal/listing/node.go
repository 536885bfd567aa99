package listing

import (
	"github.com/five82/gallery/internal/catalog"
	"github.com/five82/gallery/internal/indicator"
)

// FavoritePrefix distinguishes favorites-tab handles from catalog handles so
// the same photo can be rendered in both places at once.
const FavoritePrefix = "fav_"

// HandleID formats the rendered handle of id.
func HandleID(id catalog.ID, favorite bool) string {
	if favorite {
		return FavoritePrefix + id.String()
	}
	return id.String()
}

// Container is anything a list can be rendered into: a tab block or an
// expandable item. It owns at most one list and one load indicator.
type Container struct {
	Indicator *indicator.Indicator
	List      *List
	// Populated is set once a list has been rendered here; later expansions
	// only toggle visibility.
	Populated bool
}

// NewContainer returns an empty container with an Idle indicator.
func NewContainer() *Container {
	return &Container{Indicator: indicator.New()}
}

// List is a rendered list, owned by exactly one container.
type List struct {
	Template *Template
	Classes  []string
	Nodes    []*Node
	// Hidden mirrors the favorites tab switching between its list and the
	// empty message.
	Hidden bool
}

// Len returns the number of nodes.
func (l *List) Len() int {
	if l == nil {
		return 0
	}
	return len(l.Nodes)
}

// Index returns the position of the node with handle, or -1.
func (l *List) Index(handle string) int {
	if l == nil {
		return -1
	}
	for i, n := range l.Nodes {
		if n.Handle == handle {
			return i
		}
	}
	return -1
}

// Node is one rendered item.
type Node struct {
	Container

	Handle   string
	ID       catalog.ID
	Favorite bool
	Classes  []string
	Record   catalog.Record

	Title      string
	Expandable bool
	Expanded   bool
	Thumbnail  string
	Star       bool
	Active     bool

	// Image is filled once the thumbnail probe succeeds.
	Image     *catalog.ImageInfo
	ImageLost bool
}

// HasChildren reports whether an expanded node has a list to show.
func (n *Node) HasChildren() bool {
	return n.Expanded && n.List != nil && !n.List.Hidden
}

// Registry indexes nodes by handle across every rendered list.
type Registry struct {
	nodes map[string]*Node
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{nodes: make(map[string]*Node)}
}

// Lookup returns the node registered under handle.
func (r *Registry) Lookup(handle string) (*Node, bool) {
	n, ok := r.nodes[handle]
	return n, ok
}

// LookupID is Lookup with the handle built from id.
func (r *Registry) LookupID(id catalog.ID, favorite bool) (*Node, bool) {
	return r.Lookup(HandleID(id, favorite))
}

// Len returns the number of registered nodes.
func (r *Registry) Len() int {
	return len(r.nodes)
}

func (r *Registry) register(n *Node) {
	r.nodes[n.Handle] = n
}

// forget drops n and everything rendered beneath it.
func (r *Registry) forget(n *Node) {
	if cur, ok := r.nodes[n.Handle]; ok && cur == n {
		delete(r.nodes, n.Handle)
	}
	if n.List == nil {
		return
	}
	for _, child := range n.List.Nodes {
		r.forget(child)
	}
}
