package ui

import (
	"fmt"

	"github.com/five82/gallery/internal/catalog"
	"github.com/five82/gallery/internal/indicator"
	"github.com/five82/gallery/internal/listing"
	"github.com/five82/gallery/internal/tabs"
)

type rowKind int

const (
	rowItem rowKind = iota
	rowStatus
)

// row is one line of the flattened node tree.
type row struct {
	kind  rowKind
	depth int
	node  *listing.Node
	ind   *indicator.Indicator
}

// flatten walks a tab container depth-first. A container's indicator line
// comes before its list; collapsed nodes hide everything beneath them.
func flatten(c *listing.Container) []row {
	var rows []row
	appendContainer(&rows, c, 0)
	return rows
}

func appendContainer(rows *[]row, c *listing.Container, depth int) {
	if c.Indicator != nil && c.Indicator.Visible() {
		*rows = append(*rows, row{kind: rowStatus, depth: depth, ind: c.Indicator})
	}
	if c.List == nil || c.List.Hidden {
		return
	}
	for _, n := range c.List.Nodes {
		*rows = append(*rows, row{kind: rowItem, depth: depth, node: n})
		if n.Expanded {
			appendContainer(rows, &n.Container, depth+1)
		}
	}
}

// itemIndexes returns the positions of item rows.
func itemIndexes(rows []row) []int {
	out := make([]int, 0, len(rows))
	for i, r := range rows {
		if r.kind == rowItem {
			out = append(out, i)
		}
	}
	return out
}

// rowGeometry holds the content-relative columns of a row's controls.
type rowGeometry struct {
	markerX  int
	starX    int // -1 without a star
	thumb    tabs.Rect
	hasThumb bool
	titleX   int
}

func layoutRow(r row) rowGeometry {
	x := r.depth * indentWidth
	g := rowGeometry{markerX: x, starX: -1}
	x += markerWidth
	if r.node == nil {
		g.titleX = x
		return g
	}
	if r.node.Star {
		g.starX = x
		x += starWidth
	}
	if r.node.Thumbnail != "" {
		g.thumb = tabs.Rect{X: x, W: thumbWidth - 1}
		g.hasThumb = true
		x += thumbWidth + 1
	}
	g.titleX = x
	return g
}

// thumbLabel describes the thumbnail load state in thumbWidth cells.
func thumbLabel(n *listing.Node) string {
	var label string
	switch {
	case n.Image != nil:
		label = imageSize(*n.Image)
	case n.ImageLost:
		label = "broken"
	default:
		label = "loading"
	}
	return "[" + fit(label, thumbWidth-2) + "]"
}

func imageSize(info catalog.ImageInfo) string {
	return fmt.Sprintf("%dx%d", info.Width, info.Height)
}
