package render

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"sync"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	"github.com/HanHach/Codex-Numeris/internal/galaxy"
)

// Supersample is the internal resolution factor of a Raster.
const Supersample = 2

// kappa places cubic control points for a quarter circle.
const kappa = 0.5522847498

var (
	fontOnce sync.Once
	fontData *opentype.Font
	fontErr  error
)

func regularFont() (*opentype.Font, error) {
	fontOnce.Do(func() {
		fontData, fontErr = opentype.Parse(goregular.TTF)
	})
	return fontData, fontErr
}

// Raster is an image surface for still frames. Drawing happens at
// Supersample times the logical size; Image scales the result down.
type Raster struct {
	w, h  int
	img   *image.RGBA
	faces map[float64]font.Face
}

// NewRaster creates a raster of w×h logical pixels.
func NewRaster(w, h int) (*Raster, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("raster size %dx%d: %w", w, h, galaxy.ErrDegenerateExtent)
	}
	if _, err := regularFont(); err != nil {
		return nil, fmt.Errorf("parsing font: %w", err)
	}
	return &Raster{
		w:     w,
		h:     h,
		img:   image.NewRGBA(image.Rect(0, 0, w*Supersample, h*Supersample)),
		faces: make(map[float64]font.Face),
	}, nil
}

func (r *Raster) face(size float64) font.Face {
	if f, ok := r.faces[size]; ok {
		return f
	}
	ft, _ := regularFont()
	f, err := opentype.NewFace(ft, &opentype.FaceOptions{
		Size:    size * Supersample,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil
	}
	r.faces[size] = f
	return f
}

func nrgba(c colorful.Color, alpha float64) color.NRGBA {
	cr, cg, cb := c.Clamped().RGB255()
	return color.NRGBA{R: cr, G: cg, B: cb, A: uint8(math.Round(math.Max(0, math.Min(alpha, 1)) * 255))}
}

// Size implements Surface.
func (r *Raster) Size() galaxy.Viewport {
	return galaxy.Viewport{W: float64(r.w), H: float64(r.h)}
}

// Clear implements Surface.
func (r *Raster) Clear(c colorful.Color) {
	draw.Draw(r.img, r.img.Bounds(), image.NewUniform(nrgba(c, 1)), image.Point{}, draw.Src)
}

// circlePath adds a closed circle to z. Reverse winding cuts holes.
func circlePath(z *vector.Rasterizer, cx, cy, rad float32, reverse bool) {
	k := rad * kappa
	z.MoveTo(cx+rad, cy)
	if !reverse {
		z.CubeTo(cx+rad, cy+k, cx+k, cy+rad, cx, cy+rad)
		z.CubeTo(cx-k, cy+rad, cx-rad, cy+k, cx-rad, cy)
		z.CubeTo(cx-rad, cy-k, cx-k, cy-rad, cx, cy-rad)
		z.CubeTo(cx+k, cy-rad, cx+rad, cy-k, cx+rad, cy)
	} else {
		z.CubeTo(cx+rad, cy-k, cx+k, cy-rad, cx, cy-rad)
		z.CubeTo(cx-k, cy-rad, cx-rad, cy-k, cx-rad, cy)
		z.CubeTo(cx-rad, cy+k, cx-k, cy+rad, cx, cy+rad)
		z.CubeTo(cx+k, cy+rad, cx+rad, cy+k, cx+rad, cy)
	}
	z.ClosePath()
}

func (r *Raster) paint(z *vector.Rasterizer, c colorful.Color, alpha float64) {
	z.DrawOp = draw.Over
	z.Draw(r.img, r.img.Bounds(), image.NewUniform(nrgba(c, alpha)), image.Point{})
}

func (r *Raster) rasterizer() *vector.Rasterizer {
	b := r.img.Bounds()
	return vector.NewRasterizer(b.Dx(), b.Dy())
}

// FillCircle implements Surface.
func (r *Raster) FillCircle(center galaxy.Point, diameter float64, c colorful.Color, alpha float64) {
	if diameter <= 0 || alpha <= 0 {
		return
	}
	z := r.rasterizer()
	circlePath(z, float32(center.X*Supersample), float32(center.Y*Supersample), float32(diameter/2*Supersample), false)
	r.paint(z, c, alpha)
}

// StrokeCircle implements Surface.
func (r *Raster) StrokeCircle(center galaxy.Point, diameter, width float64, c colorful.Color, alpha float64) {
	if diameter <= 0 || width <= 0 || alpha <= 0 {
		return
	}
	cx, cy := float32(center.X*Supersample), float32(center.Y*Supersample)
	rad := diameter / 2
	outer := float32((rad + width/2) * Supersample)
	inner := float32(math.Max(rad-width/2, 0) * Supersample)

	z := r.rasterizer()
	circlePath(z, cx, cy, outer, false)
	if inner > 0 {
		circlePath(z, cx, cy, inner, true)
	}
	r.paint(z, c, alpha)
}

// TextSize implements Surface in logical pixels.
func (r *Raster) TextSize(s string, size float64) (float64, float64) {
	f := r.face(size)
	if f == nil {
		return 0, 0
	}
	adv := font.MeasureString(f, s)
	m := f.Metrics()
	return float64(adv) / 64 / Supersample, float64(m.Ascent+m.Descent) / 64 / Supersample
}

// Text implements Surface.
func (r *Raster) Text(at galaxy.Point, s string, size float64, align Align, c colorful.Color, alpha float64) {
	f := r.face(size)
	if f == nil {
		return
	}
	w, h := r.TextSize(s, size)
	tl := anchor(at, w, h, align)
	d := &font.Drawer{
		Dst:  r.img,
		Src:  image.NewUniform(nrgba(c, alpha)),
		Face: f,
		Dot:  fixed.P(int(tl.X*Supersample), int(tl.Y*Supersample)+f.Metrics().Ascent.Ceil()),
	}
	d.DrawString(s)
}

// VerticalText implements Surface. The text is drawn horizontally into a
// scratch image and copied rotated a quarter turn counterclockwise.
func (r *Raster) VerticalText(at galaxy.Point, s string, size float64, c colorful.Color, alpha float64) {
	f := r.face(size)
	if f == nil {
		return
	}
	w, h := r.TextSize(s, size)
	sw, sh := int(math.Ceil(w*Supersample)), int(math.Ceil(h*Supersample))
	if sw == 0 || sh == 0 {
		return
	}
	scratch := image.NewRGBA(image.Rect(0, 0, sw, sh))
	d := &font.Drawer{
		Dst:  scratch,
		Src:  image.NewUniform(nrgba(c, alpha)),
		Face: f,
		Dot:  fixed.P(0, f.Metrics().Ascent.Ceil()),
	}
	d.DrawString(s)

	rotated := image.NewRGBA(image.Rect(0, 0, sh, sw))
	for y := 0; y < sh; y++ {
		for x := 0; x < sw; x++ {
			rotated.Set(y, sw-1-x, scratch.At(x, y))
		}
	}

	ox := int(at.X*Supersample) - sh/2
	oy := int(at.Y*Supersample) - sw/2
	dst := image.Rect(ox, oy, ox+sh, oy+sw)
	draw.Draw(r.img, dst, rotated, image.Point{}, draw.Over)
}

// Image returns the frame scaled down to its logical size.
func (r *Raster) Image() *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, r.w, r.h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), r.img, r.img.Bounds(), draw.Src, nil)
	return dst
}
