package listing

import (
	"fmt"

	"github.com/five82/gallery/internal/catalog"
	"github.com/five82/gallery/internal/indicator"
)

// Decorator adds one piece of UI to a node. Field names the record field
// passed as value; an empty Field passes the whole record.
type Decorator struct {
	Field string
	Apply func(value any, n *Node)
}

// Async makes a list wait for one completion signal per item.
type Async struct {
	// Signal returns the resource whose load completes the item. Items that
	// report false do not take part in the barrier.
	Signal func(r catalog.Record, n *Node) (string, bool)
	// Settled reacts to the aggregate outcome on the container rendered into.
	Settled func(c *Container, ok bool)
}

// Template describes how to render one kind of list.
type Template struct {
	Name               string
	ContainerClassBase string
	Kind               catalog.Kind
	ContainerClasses   []string
	ItemClasses        []string
	ShowsLoadIndicator bool
	Decorators         []Decorator
	Async              *Async
}

// ItemClass is the base class every item of the list carries.
func (s *Template) ItemClass() string {
	return s.ContainerClassBase + "-item"
}

// Templates bundles the three list kinds of the gallery.
type Templates struct {
	Users  *Template
	Albums *Template
	Photos *Template
}

// ForKind returns the template rendering kind.
func (s Templates) ForKind(kind catalog.Kind) (*Template, error) {
	switch kind {
	case catalog.KindUser:
		return s.Users, nil
	case catalog.KindAlbum:
		return s.Albums, nil
	case catalog.KindPhoto:
		return s.Photos, nil
	}
	return nil, fmt.Errorf("no list template for kind %v", kind)
}

// ChildOf returns the template of the list loaded when an item of kind expands.
func (s Templates) ChildOf(kind catalog.Kind) (*Template, bool) {
	switch kind {
	case catalog.KindUser:
		return s.Albums, true
	case catalog.KindAlbum:
		return s.Photos, true
	}
	return nil, false
}

// DefaultTemplates returns the users, albums and photos lists.
func DefaultTemplates() Templates {
	return Templates{
		Users: &Template{
			Name:               "users",
			ContainerClassBase: "list__users",
			Kind:               catalog.KindUser,
			ShowsLoadIndicator: true,
			Decorators:         []Decorator{{Field: "name", Apply: ExpandableTitle}},
		},
		Albums: &Template{
			Name:               "albums",
			ContainerClassBase: "list__albums",
			Kind:               catalog.KindAlbum,
			ShowsLoadIndicator: true,
			Decorators:         []Decorator{{Field: "title", Apply: ExpandableTitle}},
		},
		Photos: &Template{
			Name:               "photos",
			ContainerClassBase: "list__photos",
			Kind:               catalog.KindPhoto,
			ItemClasses:        []string{"photo"},
			Decorators: []Decorator{
				{Field: "thumbnailUrl", Apply: Thumbnail},
				{Field: "title", Apply: SimpleTitle},
			},
			Async: &Async{
				Signal:  thumbnailSignal,
				Settled: SettleIndicator,
			},
		},
	}
}

// SimpleTitle sets the node title.
func SimpleTitle(value any, n *Node) {
	n.Title = fmt.Sprint(value)
}

// ExpandableTitle sets the title and adds an expand control.
func ExpandableTitle(value any, n *Node) {
	SimpleTitle(value, n)
	n.Expandable = true
}

// Thumbnail adds the thumbnail image and the favorite star.
func Thumbnail(value any, n *Node) {
	if s, ok := value.(string); ok {
		n.Thumbnail = s
	}
	n.Star = true
}

// SettleIndicator moves the container indicator to success or error.
func SettleIndicator(c *Container, ok bool) {
	if c.Indicator == nil {
		return
	}
	if ok {
		c.Indicator.Succeed()
		return
	}
	c.Indicator.Fail(indicator.LoadFailed)
}

func thumbnailSignal(_ catalog.Record, n *Node) (string, bool) {
	return n.Thumbnail, n.Thumbnail != ""
}
