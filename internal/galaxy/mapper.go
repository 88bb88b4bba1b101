package galaxy

// Point is a position in world or screen space.
type Point struct {
	X, Y float64
}

// Viewport is the drawable area in pixels.
type Viewport struct {
	W, H float64
}

// Empty reports whether the viewport has no drawable area.
func (vp Viewport) Empty() bool {
	return vp.W <= 0 || vp.H <= 0
}

// Center returns the viewport's middle in screen space.
func (vp Viewport) Center() Point {
	return Point{vp.W / 2, vp.H / 2}
}

// View is the transform applied for one frame: the world point at the
// viewport center and the scale from world units to pixels.
type View struct {
	X, Y float64
	Zoom float64
}

// MapLinear re-projects v from [inMin, inMax] to [outMin, outMax].
// Output ranges may be inverted. inMin must differ from inMax.
func MapLinear(v, inMin, inMax, outMin, outMax float64) float64 {
	return outMin + (v-inMin)*(outMax-outMin)/(inMax-inMin)
}

// WorldToScreen projects a world point onto the screen.
func WorldToScreen(v View, vp Viewport, p Point) Point {
	return Point{
		X: (p.X-v.X)*v.Zoom + vp.W/2,
		Y: (p.Y-v.Y)*v.Zoom + vp.H/2,
	}
}

// ScreenToWorld is the inverse of WorldToScreen.
func ScreenToWorld(v View, vp Viewport, p Point) Point {
	return Point{
		X: (p.X-vp.W/2)/v.Zoom + v.X,
		Y: (p.Y-vp.H/2)/v.Zoom + v.Y,
	}
}

// VisibleBounds returns the world rectangle covered by the viewport.
func VisibleBounds(v View, vp Viewport) WorldExtent {
	tl := ScreenToWorld(v, vp, Point{0, 0})
	br := ScreenToWorld(v, vp, Point{vp.W, vp.H})
	return WorldExtent{MinX: tl.X, MaxX: br.X, MinY: tl.Y, MaxY: br.Y}
}
