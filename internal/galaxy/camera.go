package galaxy

import (
	"errors"
	"math"
)

// Camera limits and rates.
const (
	ZoomMin       = 0.35
	ZoomMax       = 5.0
	ZoomInFactor  = 1.1
	ZoomOutFactor = 0.9
	Damping       = 0.08
	FitMargin     = 0.9
)

// ErrDegenerateExtent is returned when there is no area to frame.
var ErrDegenerateExtent = errors.New("galaxy: degenerate extent")

// Camera holds the current and target transform. Input mutates targets only;
// Step moves the current values toward them.
type Camera struct {
	X, Y, Zoom                   float64
	TargetX, TargetY, TargetZoom float64
	extent                       *WorldExtent
}

// NewCamera returns an uninitialized camera at the origin with unit zoom.
func NewCamera() *Camera {
	return &Camera{Zoom: 1, TargetZoom: 1}
}

// Initialize frames the extent within the viewport. Current and target are
// equal afterwards so there is no opening animation. The fit zoom is not
// clamped, so the whole extent is visible; ZoomBy clamps from the first zoom
// step on. A nil or zero-area extent leaves the camera untouched.
func (c *Camera) Initialize(extent *WorldExtent, vp Viewport) error {
	if extent == nil || extent.Width() <= 0 || extent.Height() <= 0 || vp.Empty() {
		return ErrDegenerateExtent
	}
	zoom := math.Min(vp.W/extent.Width(), vp.H/extent.Height()) * FitMargin

	cx, cy := extent.Center()
	c.X, c.Y, c.Zoom = cx, cy, zoom
	c.TargetX, c.TargetY, c.TargetZoom = cx, cy, zoom
	e := *extent
	c.extent = &e
	return nil
}

// Initialized reports whether Initialize has succeeded at least once.
func (c *Camera) Initialized() bool {
	return c.extent != nil
}

// Extent returns the pan bounds, nil before initialization.
func (c *Camera) Extent() *WorldExtent {
	return c.extent
}

// ZoomBy scales the target zoom, clamped to [ZoomMin, ZoomMax].
func (c *Camera) ZoomBy(factor float64) {
	c.TargetZoom = clamp(c.TargetZoom*factor, ZoomMin, ZoomMax)
}

// Wheel applies one discrete wheel tick.
func (c *Camera) Wheel(up bool) {
	if up {
		c.ZoomBy(ZoomInFactor)
	} else {
		c.ZoomBy(ZoomOutFactor)
	}
}

// PanBy moves the target by a screen-space drag delta. The delta is scaled
// by the rendered zoom, not the target zoom.
func (c *Camera) PanBy(dx, dy float64) {
	c.TargetX -= dx / c.Zoom
	c.TargetY -= dy / c.Zoom
	if c.extent != nil {
		c.TargetX = clamp(c.TargetX, c.extent.MinX, c.extent.MaxX)
		c.TargetY = clamp(c.TargetY, c.extent.MinY, c.extent.MaxY)
	}
}

// Step moves current values a fraction of the way toward their targets.
func (c *Camera) Step(factor float64) {
	c.X += (c.TargetX - c.X) * factor
	c.Y += (c.TargetY - c.Y) * factor
	c.Zoom += (c.TargetZoom - c.Zoom) * factor
}

// View returns the current transform.
func (c *Camera) View() View {
	return View{X: c.X, Y: c.Y, Zoom: c.Zoom}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
