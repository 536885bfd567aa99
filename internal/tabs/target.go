package tabs

import (
	"github.com/five82/gallery/internal/catalog"
	"github.com/five82/gallery/internal/listing"
	"github.com/five82/gallery/internal/state"
)

// TargetKind classifies what an input event landed on.
type TargetKind int

const (
	TargetNone TargetKind = iota
	TargetTab
	TargetExpand
	TargetStar
	TargetThumbnail
	TargetPopupClose
	TargetPopupBackdrop
	TargetPopupImage
)

func (k TargetKind) String() string {
	switch k {
	case TargetTab:
		return "tab"
	case TargetExpand:
		return "expand"
	case TargetStar:
		return "star"
	case TargetThumbnail:
		return "thumbnail"
	case TargetPopupClose:
		return "popup-close"
	case TargetPopupBackdrop:
		return "popup-backdrop"
	case TargetPopupImage:
		return "popup-image"
	default:
		return "none"
	}
}

// Target is an event classified once by the UI.
type Target struct {
	Kind   TargetKind
	Tab    state.Tab
	Handle string
}

// Rect is a cell-aligned bounding box.
type Rect struct {
	X, Y, W, H int
}

// Contains reports whether (x, y) lies inside r grown by tol on every side.
func (r Rect) Contains(x, y, tol int) bool {
	return x >= r.X-tol && x <= r.X+r.W+tol &&
		y >= r.Y-tol && y <= r.Y+r.H+tol
}

// Pointer is a pointer movement over the content area. Handle and Thumb are
// empty when the pointer is not over a photo.
type Pointer struct {
	X, Y   int
	Handle string
	Thumb  Rect
}

// Request is a fetch the UI must issue on the controller's behalf.
type Request struct {
	Query     catalog.Query
	Container *listing.Container
	Template  *listing.Template
	Options   listing.Options
	// Popup marks the single-photo fetch of the lightbox.
	Popup bool
	Photo catalog.ID
}
