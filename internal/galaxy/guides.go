package galaxy

import (
	"strconv"
	"time"
)

// StarLevels are the popularity gridlines.
var StarLevels = []int{10, 100, 1000, 10000, 100000}

// StarGuideMinZoom hides the star gridlines when zoomed out this far.
const StarGuideMinZoom = 0.2

// Axis titles.
const (
	TimelineTitle   = "Timeline (Creation Date)"
	PopularityTitle = "Popularity (Stars)"
)

// StarGuide is one horizontal popularity gridline.
type StarGuide struct {
	Stars int
	Y     float64
	Label string
}

// YearGuide is one vertical timeline label.
type YearGuide struct {
	Year  int
	X     float64
	Label string
}

// StarGuides returns the gridlines to show at zoom. Levels above the data's
// maximum are left out.
func StarGuides(a Axes, zoom float64) []StarGuide {
	if zoom <= StarGuideMinZoom {
		return nil
	}
	var out []StarGuide
	for _, level := range StarLevels {
		if LogStars(level) > a.MaxLogStars {
			continue
		}
		out = append(out, StarGuide{
			Stars: level,
			Y:     a.BaseY(level),
			Label: strconv.Itoa(level) + "★",
		})
	}
	return out
}

// YearLabelStride returns how many years apart labels are at zoom.
func YearLabelStride(zoom float64) int {
	switch {
	case zoom >= 1:
		return 1
	case zoom >= 0.5:
		return 2
	case zoom >= 0.2:
		return 5
	default:
		return 10
	}
}

// YearGuides returns the labelled years from MinDate's year through Now's.
func YearGuides(a Axes, zoom float64) []YearGuide {
	stride := YearLabelStride(zoom)
	var out []YearGuide
	for y := a.MinDate.Year(); y <= a.Now.Year(); y++ {
		if y%stride != 0 {
			continue
		}
		out = append(out, YearGuide{
			Year:  y,
			X:     a.X(time.Date(y, time.January, 1, 0, 0, 0, 0, time.UTC)),
			Label: strconv.Itoa(y),
		})
	}
	return out
}
