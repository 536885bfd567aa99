package ui

import (
	"testing"

	"github.com/five82/gallery/internal/catalog"
	"github.com/five82/gallery/internal/favorites"
	"github.com/five82/gallery/internal/listing"
	"github.com/five82/gallery/internal/tabs"
)

func renderUsers(t *testing.T, ids ...int64) (*listing.Renderer, *listing.Container) {
	t.Helper()
	r := listing.NewRenderer(listing.NewRegistry())
	c := listing.NewContainer()
	var recs []catalog.Record
	for _, id := range ids {
		recs = append(recs, catalog.User{ID: catalog.FlexInt(id), Name: "user"})
	}
	r.Render(listing.DefaultTemplates().Users, recs, c, favorites.New(), listing.Options{})
	return r, c
}

func TestFlatten_IndicatorBeforeChildren(t *testing.T) {
	r, c := renderUsers(t, 1, 2)
	u1 := c.List.Nodes[0]
	u1.Expanded = true
	u1.Indicator.Start()

	rows := flatten(c)
	if len(rows) != 3 {
		t.Fatalf("rows = %d, want 3", len(rows))
	}
	if rows[1].kind != rowStatus || rows[1].depth != 1 {
		t.Fatalf("row 1 = %+v, want status at depth 1", rows[1])
	}

	albums := []catalog.Record{catalog.Album{ID: 4, UserID: 1, Title: "a"}}
	r.Render(listing.DefaultTemplates().Albums, albums, &u1.Container, nil, listing.Options{})
	rows = flatten(c)
	if len(rows) != 3 || rows[1].node.Handle != "albumId=4" {
		t.Fatalf("rows after load = %+v", rows)
	}

	u1.Expanded = false
	if got := len(flatten(c)); got != 2 {
		t.Fatalf("collapsed rows = %d, want 2", got)
	}
}

func TestFlatten_HiddenListSkipped(t *testing.T) {
	_, c := renderUsers(t, 1)
	c.List.Hidden = true
	if rows := flatten(c); len(rows) != 0 {
		t.Fatalf("rows = %d, want 0", len(rows))
	}
}

func TestLayoutRow(t *testing.T) {
	n := &listing.Node{Star: true, Thumbnail: "http://img.test/t.png"}
	g := layoutRow(row{kind: rowItem, depth: 2, node: n})

	if g.markerX != 4 || g.starX != 6 {
		t.Fatalf("markerX=%d starX=%d, want 4 and 6", g.markerX, g.starX)
	}
	want := tabs.Rect{X: 8, W: thumbWidth - 1}
	if !g.hasThumb || g.thumb != want {
		t.Fatalf("thumb = %+v, want %+v", g.thumb, want)
	}
	if g.titleX != 20 {
		t.Fatalf("titleX = %d, want 20", g.titleX)
	}

	plain := layoutRow(row{kind: rowItem, node: &listing.Node{Expandable: true}})
	if plain.starX != -1 || plain.hasThumb || plain.titleX != markerWidth {
		t.Fatalf("plain geometry = %+v", plain)
	}
}

func TestThumbLabel(t *testing.T) {
	tests := []struct {
		name string
		node listing.Node
		want string
	}{
		{"loading", listing.Node{}, "[loading  ]"},
		{"lost", listing.Node{ImageLost: true}, "[broken   ]"},
		{"loaded", listing.Node{Image: &catalog.ImageInfo{Width: 600, Height: 600}}, "[600x600  ]"},
		{"wide", listing.Node{Image: &catalog.ImageInfo{Width: 12000, Height: 9000}}, "[12000x...]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := thumbLabel(&tt.node); got != tt.want {
				t.Fatalf("thumbLabel = %q, want %q", got, tt.want)
			}
		})
	}
}
