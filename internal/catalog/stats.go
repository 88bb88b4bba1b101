package catalog

import (
	"sort"
	"time"
)

// Count is a labelled tally.
type Count struct {
	Label string
	N     int
}

// Summary describes a dataset at a glance.
type Summary struct {
	Total     int
	MaxStars  int
	Oldest    time.Time
	Newest    time.Time
	Languages []Count // by count descending, then label
	Years     []Count // by year ascending
}

// Summarize tallies projects per language and per creation year.
func Summarize(items []Item) Summary {
	s := Summary{Total: len(items)}
	langs := make(map[string]int)
	years := make(map[string]int)

	for _, it := range items {
		if it.Stars > s.MaxStars {
			s.MaxStars = it.Stars
		}
		if s.Oldest.IsZero() || it.CreatedAt.Before(s.Oldest) {
			s.Oldest = it.CreatedAt
		}
		if it.CreatedAt.After(s.Newest) {
			s.Newest = it.CreatedAt
		}
		lang := it.Category
		if lang == "" {
			lang = "(none)"
		}
		langs[lang]++
		years[it.CreatedAt.UTC().Format("2006")]++
	}

	for label, n := range langs {
		s.Languages = append(s.Languages, Count{Label: label, N: n})
	}
	sort.Slice(s.Languages, func(i, j int) bool {
		if s.Languages[i].N != s.Languages[j].N {
			return s.Languages[i].N > s.Languages[j].N
		}
		return s.Languages[i].Label < s.Languages[j].Label
	})

	for label, n := range years {
		s.Years = append(s.Years, Count{Label: label, N: n})
	}
	sort.Slice(s.Years, func(i, j int) bool { return s.Years[i].Label < s.Years[j].Label })

	return s
}
