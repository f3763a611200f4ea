package interaction

import "github.com/aretw0/logicx/pkg/domain"

const (
	DefaultGridScale = 35.0
	DefaultSnapUnit  = 0.25
)

// View holds the presentation parameters the gestures depend on.
type View struct {
	// GridScale is the number of screen pixels per grid unit.
	GridScale float64 `json:"grid_scale" yaml:"grid_scale"`
	// Snap enables floor-to-grid quantization of dragged instances.
	Snap     bool    `json:"snap" yaml:"snap"`
	SnapUnit float64 `json:"snap_unit" yaml:"snap_unit"`
	// Scroll is the pan offset of the canvas in screen pixels.
	Scroll domain.Coord `json:"scroll" yaml:"scroll"`
	// Edit enables instance and terminal gestures; panning works in both modes.
	Edit bool `json:"edit" yaml:"edit"`
}

// DefaultView returns the editor defaults.
func DefaultView() View {
	return View{
		GridScale: DefaultGridScale,
		Snap:      true,
		SnapUnit:  DefaultSnapUnit,
		Edit:      true,
	}
}

// Rect is an on-screen rectangle.
type Rect struct {
	X, Y          float64
	Width, Height float64
}

// Origin returns the top-left corner.
func (r Rect) Origin() domain.Coord {
	return domain.Pt(r.X, r.Y)
}

// Viewport reports the current on-screen bounds of the render surface.
// ok is false while the surface has not been laid out yet.
type Viewport interface {
	Bounds() (r Rect, ok bool)
}

// ViewportFunc adapts a function to the Viewport interface.
type ViewportFunc func() (Rect, bool)

func (f ViewportFunc) Bounds() (Rect, bool) {
	return f()
}

// StaticViewport is a Viewport with fixed bounds.
type StaticViewport Rect

func (v StaticViewport) Bounds() (Rect, bool) {
	return Rect(v), true
}
