package galaxy

import (
	"math"
	"time"

	"github.com/HanHach/Codex-Numeris/internal/catalog"
)

// Layout proportions, relative to the viewport.
const (
	TimelineStart  = -0.5 // X of MinDate, in viewport widths
	TimelineEnd    = 2.5  // X of Now, in viewport widths
	VerticalRange  = 1.2  // in viewport heights
	PopularitySpan = 0.8  // share of VerticalRange above and below center
	JitterFraction = 0.03 // in viewport heights
	MinOrbSize     = 5.0
	MaxOrbSize     = 60.0
	MarginX        = 0.1  // extent margin, in viewport widths
	MarginY        = 0.05 // extent margin, in viewport heights
)

// DefaultMinDate is the start of the timeline.
var DefaultMinDate = time.Date(2013, time.January, 1, 0, 0, 0, 0, time.UTC)

// Axes maps item attributes to world coordinates for one layout pass.
// The guides use the same Axes so gridlines line up with the orbs.
type Axes struct {
	Viewport    Viewport
	MinDate     time.Time
	Now         time.Time
	MaxStars    int
	MaxLogStars float64
}

// NewAxes derives the popularity scale from the whole item list.
func NewAxes(items []catalog.Item, vp Viewport, minDate, now time.Time) Axes {
	maxStars := 1
	for _, it := range items {
		if it.Stars > maxStars {
			maxStars = it.Stars
		}
	}
	return Axes{
		Viewport:    vp,
		MinDate:     minDate,
		Now:         now,
		MaxStars:    maxStars,
		MaxLogStars: math.Log10(float64(maxStars) + 1),
	}
}

// LogStars is the popularity measure. The +1 keeps zero-star items finite.
func LogStars(stars int) float64 {
	return math.Log10(float64(stars) + 1)
}

// X returns the timeline position of t.
func (a Axes) X(t time.Time) float64 {
	return MapLinear(
		float64(t.UnixMilli()),
		float64(a.MinDate.UnixMilli()),
		float64(a.Now.UnixMilli()),
		a.Viewport.W*TimelineStart,
		a.Viewport.W*TimelineEnd,
	)
}

// PopularityOffset maps a log star value to its vertical offset from the
// viewport center. Higher popularity yields a smaller (higher) offset.
func (a Axes) PopularityOffset(logStars float64) float64 {
	r := a.Viewport.H * VerticalRange
	return MapLinear(logStars, 0, a.MaxLogStars, r*PopularitySpan, -r*PopularitySpan)
}

// BaseY is the world Y for a star count before jitter.
func (a Axes) BaseY(stars int) float64 {
	return a.Viewport.H/2 + a.PopularityOffset(LogStars(stars))
}

// Size maps a star count to an orb diameter in [MinOrbSize, MaxOrbSize].
func (a Axes) Size(stars int) float64 {
	return MapLinear(LogStars(stars), 0, a.MaxLogStars, MinOrbSize, MaxOrbSize)
}
