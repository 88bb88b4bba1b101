package galaxy

import "math"

// HoverPadding is added to an orb's radius for hover detection.
const HoverPadding = 5.0

// HitTest returns the orb nearest to the screen point, or nil. Only orbs at
// or above HoverMinAlpha whose center lies within size/2+HoverPadding world
// units qualify. An orb whose target alpha is at or below HoverMinAlpha is
// filtered out and never qualifies, even while it is still fading. On equal
// distance the earlier orb wins.
func HitTest(orbs []*Orb, v View, vp Viewport, screen Point) *Orb {
	p := ScreenToWorld(v, vp, screen)

	var hit *Orb
	best := math.Inf(1)
	for _, o := range orbs {
		if o.Alpha < HoverMinAlpha || o.TargetAlpha <= HoverMinAlpha {
			continue
		}
		d := math.Hypot(p.X-o.X, p.Y-o.Y)
		if d < o.Size/2+HoverPadding && d < best {
			hit = o
			best = d
		}
	}
	return hit
}
