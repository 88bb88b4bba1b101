package galaxy

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/HanHach/Codex-Numeris/internal/catalog"
)

// Fade and visibility thresholds.
const (
	FadeFactor    = 0.05
	DrawThreshold = 0.01 // orbs fainter than this are not drawn
	HoverMinAlpha = 0.1  // orbs fainter than this cannot be hovered
)

// Orb is the positioned marker of one catalog item.
type Orb struct {
	X, Y        float64
	Size        float64
	ColorKey    string
	Alpha       float64
	TargetAlpha float64
	Item        *catalog.Item
}

// Fade moves Alpha toward TargetAlpha by the given fraction.
func (o *Orb) Fade(factor float64) {
	o.Alpha += (o.TargetAlpha - o.Alpha) * factor
}

// WorldExtent is an axis-aligned rectangle in world space.
type WorldExtent struct {
	MinX, MaxX, MinY, MaxY float64
}

// Width of the extent.
func (e WorldExtent) Width() float64 { return e.MaxX - e.MinX }

// Height of the extent.
func (e WorldExtent) Height() float64 { return e.MaxY - e.MinY }

// Center returns the midpoint of the extent.
func (e WorldExtent) Center() (float64, float64) {
	return (e.MinX + e.MaxX) / 2, (e.MinY + e.MaxY) / 2
}

// Contains reports whether p lies inside the extent, edges included.
func (e WorldExtent) Contains(p Point) bool {
	return p.X >= e.MinX && p.X <= e.MaxX && p.Y >= e.MinY && p.Y <= e.MaxY
}

// LayoutOptions controls a layout pass.
type LayoutOptions struct {
	MinDate time.Time
	Now     time.Time
	Rand    *rand.Rand // jitter source; nil draws a fresh seed
}

func (o LayoutOptions) withDefaults() LayoutOptions {
	if o.MinDate.IsZero() {
		o.MinDate = DefaultMinDate
	}
	if o.Now.IsZero() {
		o.Now = time.Now()
	}
	if o.Rand == nil {
		o.Rand = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return o
}

// Axes returns the axes a layout pass with these options would use.
func (o LayoutOptions) Axes(items []catalog.Item, vp Viewport) Axes {
	o = o.withDefaults()
	return NewAxes(items, vp, o.MinDate, o.Now)
}

// BuildOrbs places every item created on or after MinDate. The returned
// extent is nil when no orb was produced. Jitter makes repeated calls on
// the same input differ unless the same seeded Rand state is supplied.
func BuildOrbs(items []catalog.Item, vp Viewport, opts LayoutOptions) ([]*Orb, *WorldExtent) {
	opts = opts.withDefaults()
	if len(items) == 0 {
		return []*Orb{}, nil
	}

	axes := NewAxes(items, vp, opts.MinDate, opts.Now)
	jitter := vp.H * JitterFraction

	minX, maxX := math.Inf(1), math.Inf(-1)
	minY, maxY := math.Inf(1), math.Inf(-1)

	orbs := make([]*Orb, 0, len(items))
	for i := range items {
		it := &items[i]
		if it.CreatedAt.Before(opts.MinDate) {
			continue
		}

		x := axes.X(it.CreatedAt)
		y := axes.BaseY(it.Stars) + (opts.Rand.Float64()*2-1)*jitter

		minX, maxX = math.Min(minX, x), math.Max(maxX, x)
		minY, maxY = math.Min(minY, y), math.Max(maxY, y)

		orbs = append(orbs, &Orb{
			X:           x,
			Y:           y,
			Size:        axes.Size(it.Stars),
			ColorKey:    it.Category,
			Alpha:       1,
			TargetAlpha: 1,
			Item:        it,
		})
	}

	if len(orbs) == 0 {
		return orbs, nil
	}

	mx, my := vp.W*MarginX, vp.H*MarginY
	return orbs, &WorldExtent{
		MinX: minX - mx,
		MaxX: maxX + mx,
		MinY: minY - my,
		MaxY: maxY + my,
	}
}

// FadeOrbs advances every orb's alpha one frame.
func FadeOrbs(orbs []*Orb) {
	for _, o := range orbs {
		o.Fade(FadeFactor)
	}
}
