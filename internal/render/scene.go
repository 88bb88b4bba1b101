package render

import (
	"github.com/lucasb-eyer/go-colorful"

	"github.com/HanHach/Codex-Numeris/internal/galaxy"
)

// BackgroundColor is the deep-space fill (#0A0F1E).
var BackgroundColor = colorful.Color{R: 10.0 / 255, G: 15.0 / 255, B: 30.0 / 255}

var white = colorful.Color{R: 1, G: 1, B: 1}

// TitleColor captions still renders, matching the HUD title.
var TitleColor = colorful.Color{R: 120.0 / 255, G: 190.0 / 255, B: 1}

// Orb passes: diameter multipliers and opacities.
const (
	haloScale  = 2.5
	haloAlpha  = 20.0 / 255
	bodyAlpha  = 200.0 / 255
	coreScale  = 0.3
	coreAlpha  = 220.0 / 255
	ringScale  = 2.0
	ringAlpha  = 150.0 / 255
	ringWidth  = 2.0
	guideAlpha = 50.0 / 255

	LabelSize = 12.0
	TitleSize = 18.0
)

// Scene is everything one frame draws.
type Scene struct {
	Ready      bool // false until the catalog is laid out
	View       galaxy.View
	Viewport   galaxy.Viewport
	Time       float64 // seconds since the session started
	Background []galaxy.BackgroundOrb
	Orbs       []*galaxy.Orb
	Hovered    *galaxy.Orb
	Axes       galaxy.Axes
	Palette    *galaxy.Palette
}

// DrawScene paints sc onto s back to front. Orb alphas are read, not
// advanced; the frame loop fades them before drawing.
func DrawScene(s Surface, sc Scene) {
	s.Clear(BackgroundColor)
	if !sc.Ready {
		return
	}
	drawBackground(s, sc)
	drawOrbs(s, sc)
	drawGuides(s, sc)
}

func drawBackground(s Surface, sc Scene) {
	for _, b := range sc.Background {
		p := galaxy.WorldToScreen(sc.View, sc.Viewport, b.Position(sc.View, sc.Viewport))
		if !onScreen(p, 2, sc.Viewport) {
			continue
		}
		s.FillCircle(p, b.Diameter()*sc.View.Zoom, white, b.Alpha(sc.Time))
	}
}

func drawOrbs(s Surface, sc Scene) {
	pal := sc.Palette
	if pal == nil {
		pal = galaxy.NewPalette()
	}
	for _, o := range sc.Orbs {
		if o.Alpha < galaxy.DrawThreshold {
			continue
		}
		p := galaxy.WorldToScreen(sc.View, sc.Viewport, galaxy.Point{X: o.X, Y: o.Y})
		d := o.Size * sc.View.Zoom
		if !onScreen(p, d*haloScale/2, sc.Viewport) {
			continue
		}
		c := pal.Color(o.ColorKey)
		s.FillCircle(p, d*haloScale, c, haloAlpha*o.Alpha)
		s.FillCircle(p, d, c, bodyAlpha*o.Alpha)
		s.FillCircle(p, d*coreScale, white, coreAlpha*o.Alpha)
		if o == sc.Hovered {
			s.StrokeCircle(p, d*ringScale, ringWidth, white, ringAlpha)
		}
	}
}

func drawGuides(s Surface, sc Scene) {
	vp := sc.Viewport
	_, labelH := s.TextSize("0", LabelSize)
	_, titleH := s.TextSize("T", TitleSize)

	titleY := min(vp.H*0.98, vp.H-titleH)
	yearY := min(vp.H*0.95, titleY-labelH)

	for _, g := range galaxy.StarGuides(sc.Axes, sc.View.Zoom) {
		y := galaxy.WorldToScreen(sc.View, vp, galaxy.Point{Y: g.Y}).Y
		s.Text(galaxy.Point{X: vp.W * 0.05, Y: y}, g.Label, LabelSize, AlignRightMiddle, white, guideAlpha)
	}

	for _, g := range galaxy.YearGuides(sc.Axes, sc.View.Zoom) {
		x := galaxy.WorldToScreen(sc.View, vp, galaxy.Point{X: g.X}).X
		s.Text(galaxy.Point{X: x, Y: yearY}, g.Label, LabelSize, AlignCenterTop, white, guideAlpha)
	}

	s.Text(galaxy.Point{X: vp.W / 2, Y: titleY}, galaxy.TimelineTitle, TitleSize, AlignCenterTop, white, guideAlpha)
	s.VerticalText(galaxy.Point{X: vp.W*0.02 + titleH/2, Y: vp.H / 2}, galaxy.PopularityTitle, TitleSize, white, guideAlpha)
}

func onScreen(p galaxy.Point, r float64, vp galaxy.Viewport) bool {
	return p.X+r >= 0 && p.X-r <= vp.W && p.Y+r >= 0 && p.Y-r <= vp.H
}
