package explore

import (
	"sort"
	"strconv"
	"time"

	"github.com/HanHach/Codex-Numeris/internal/catalog"
	"github.com/HanHach/Codex-Numeris/internal/galaxy"
)

// FilterOptions are the values the filter controls can cycle through,
// galaxy.All excluded.
type FilterOptions struct {
	Categories []string // distinct, sorted
	Years      []string // newest first, down to the timeline start
}

// NewFilterOptions lists the languages present in items and the years from
// now back to minDate's year.
func NewFilterOptions(items []catalog.Item, now, minDate time.Time) FilterOptions {
	seen := make(map[string]bool)
	var cats []string
	for _, it := range items {
		if it.Category != "" && !seen[it.Category] {
			seen[it.Category] = true
			cats = append(cats, it.Category)
		}
	}
	sort.Strings(cats)

	var years []string
	for y := now.Year(); y >= minDate.Year(); y-- {
		years = append(years, strconv.Itoa(y))
	}
	return FilterOptions{Categories: cats, Years: years}
}

// cycle steps from cur through all followed by values, wrapping around.
// A value not in the list restarts at all.
func cycle(values []string, cur string, step int) string {
	choices := append([]string{galaxy.All}, values...)
	idx := 0
	for i, v := range choices {
		if v == cur {
			idx = i
			break
		}
	}
	n := len(choices)
	return choices[((idx+step)%n+n)%n]
}

// NextCategory returns the category step positions away from cur.
func (o FilterOptions) NextCategory(cur string, step int) string {
	return cycle(o.Categories, cur, step)
}

// NextYear returns the year step positions away from cur.
func (o FilterOptions) NextYear(cur string, step int) string {
	return cycle(o.Years, cur, step)
}
