package explore

import "time"

const (
	DefaultFrameRate = 30 // frames per second
	InputChanSize    = 256
)

// SecsToFrames converts a duration in seconds to frames at rate.
func SecsToFrames(s float64, rate int) int {
	f := int(s * float64(rate))
	if f < 1 {
		f = 1
	}
	return f
}

// FrameInterval is the ticker period for rate, falling back to the default.
func FrameInterval(rate int) time.Duration {
	if rate <= 0 {
		rate = DefaultFrameRate
	}
	return time.Second / time.Duration(rate)
}

// Timing constants, in seconds.
const (
	StatusDuration = 6.0 // how long a status message replaces the key help
	PanStep        = 0.1 // keyboard pan, as a share of the viewport
)
