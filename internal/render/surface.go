package render

import (
	"github.com/lucasb-eyer/go-colorful"

	"github.com/HanHach/Codex-Numeris/internal/galaxy"
)

// Align positions text relative to its anchor point.
type Align int

const (
	AlignLeftTop Align = iota
	AlignCenterTop
	AlignRightMiddle
	AlignCenterMiddle
)

// Surface is the immediate-mode drawing target of a scene. Coordinates are
// screen pixels; diameters and widths too. Alpha is in [0, 1].
type Surface interface {
	Size() galaxy.Viewport
	Clear(c colorful.Color)
	FillCircle(center galaxy.Point, diameter float64, c colorful.Color, alpha float64)
	StrokeCircle(center galaxy.Point, diameter, width float64, c colorful.Color, alpha float64)
	Text(at galaxy.Point, s string, size float64, align Align, c colorful.Color, alpha float64)
	// VerticalText draws s reading bottom to top, centered on at.
	VerticalText(at galaxy.Point, s string, size float64, c colorful.Color, alpha float64)
	// TextSize returns the pixel extent of s at size.
	TextSize(s string, size float64) (w, h float64)
}

// anchor returns the top-left corner of a w×h box aligned at p.
func anchor(p galaxy.Point, w, h float64, align Align) galaxy.Point {
	switch align {
	case AlignCenterTop:
		return galaxy.Point{X: p.X - w/2, Y: p.Y}
	case AlignRightMiddle:
		return galaxy.Point{X: p.X - w, Y: p.Y - h/2}
	case AlignCenterMiddle:
		return galaxy.Point{X: p.X - w/2, Y: p.Y - h/2}
	default:
		return p
	}
}
