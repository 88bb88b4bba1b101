package galaxy

import (
	"math"
	"math/rand/v2"
)

// Background field parameters.
const (
	DefaultBackgroundCount = 1500
	Parallax               = 0.5
	TwinkleSpeed           = 5.0
	minParticleAlpha       = 20.0
	maxParticleAlpha       = 255.0
)

// BackgroundOrb is a decorative particle. It never refers to an item.
type BackgroundOrb struct {
	X, Y  float64
	Size  float64
	Depth float64
	Phase float64
}

// NewBackground scatters n particles over three viewport widths and heights
// centered on the viewport.
func NewBackground(n int, vp Viewport, rng *rand.Rand) []BackgroundOrb {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	out := make([]BackgroundOrb, n)
	for i := range out {
		out[i] = BackgroundOrb{
			X:     uniform(rng, -vp.W, 2*vp.W),
			Y:     uniform(rng, -vp.H, 2*vp.H),
			Size:  uniform(rng, 1, 4),
			Depth: uniform(rng, 0.05, 0.7),
			Phase: uniform(rng, 0, 2*math.Pi),
		}
	}
	return out
}

func uniform(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}

// Position returns the particle's world position for the current view. The
// field drifts at half the camera's speed to fake depth.
func (b BackgroundOrb) Position(v View, vp Viewport) Point {
	return Point{
		X: b.X + (v.X-vp.W/2)*Parallax,
		Y: b.Y + (v.Y-vp.H/2)*Parallax,
	}
}

// Diameter is the particle's world diameter.
func (b BackgroundOrb) Diameter() float64 {
	return b.Size * b.Depth
}

// Alpha returns the twinkle opacity in [20/255, 1] at t seconds.
func (b BackgroundOrb) Alpha(t float64) float64 {
	a := (100 + math.Sin(t*b.Depth*TwinkleSpeed+b.Phase)*50) * b.Depth
	return clamp(a, minParticleAlpha, maxParticleAlpha) / 255
}
