package galaxy

import (
	"math"
	"unicode/utf16"

	"github.com/lucasb-eyer/go-colorful"
)

// NoCategoryColor is used for items without a language (#cccccc).
var NoCategoryColor = colorful.Color{R: 0.8, G: 0.8, B: 0.8}

const (
	paletteSaturation = 0.70
	paletteLightness  = 0.55
)

// Palette resolves color keys to colors and memoizes the result.
// It is not safe for concurrent use; each frame owns its own.
type Palette struct {
	cache map[string]colorful.Color
}

// NewPalette returns an empty palette.
func NewPalette() *Palette {
	return &Palette{cache: make(map[string]colorful.Color)}
}

// Color returns the stable color of a key.
func (p *Palette) Color(key string) colorful.Color {
	if key == "" {
		return NoCategoryColor
	}
	if c, ok := p.cache[key]; ok {
		return c
	}
	c := colorful.Hsl(Hue(key), paletteSaturation, paletteLightness)
	p.cache[key] = c
	return c
}

// Hue hashes a key to a hue in [0, 360). The hash works on UTF-16 code units
// and wraps the shifted term to 32 bits so keys keep the colors they have in
// the web client.
func Hue(key string) float64 {
	var h int64
	for _, u := range utf16.Encode([]rune(key)) {
		shifted := int64(int32(uint32(h) << 5))
		h = int64(u) + shifted - h
	}
	return math.Abs(float64(h % 360))
}
