package catalog

import (
	"fmt"
	"math"
	"math/rand/v2"
	"strings"
	"time"
)

var synthLanguages = []string{
	"Python", "Go", "JavaScript", "TypeScript", "Rust", "C++", "Jupyter Notebook",
	"R", "Java", "Julia", "HTML", "",
}

var synthOrgs = []string{
	"harvard", "harvard-lil", "harvardnlp", "HarvardEcon", "cs50", "hms-dbmi", "",
}

var synthWords = []string{
	"atlas", "lumen", "quill", "orbit", "vector", "cipher", "ledger", "prism",
	"nebula", "scribe", "tessera", "delta", "harbor", "kernel", "lattice", "signal",
}

// Synthesize generates n plausible projects created between 2010 and now.
// Star counts follow a heavy-tailed distribution so the log axis is populated
// from the bottom to the top. Some items predate 2013 and are dropped by the
// layout, as real catalogs contain such projects too.
func Synthesize(n int, rng *rand.Rand, now time.Time) []Item {
	start := time.Date(2010, time.January, 1, 0, 0, 0, 0, time.UTC)
	span := now.Sub(start)
	if span <= 0 {
		span = 24 * time.Hour
	}

	items := make([]Item, 0, n)
	for i := 0; i < n; i++ {
		created := start.Add(time.Duration(rng.Int64N(int64(span))))

		// Pareto-ish tail: most projects have a handful of stars, a few have tens of thousands.
		stars := int(math.Floor(math.Pow(rng.Float64(), 6) * 60000))

		a := synthWords[rng.IntN(len(synthWords))]
		b := synthWords[rng.IntN(len(synthWords))]
		name := fmt.Sprintf("%s-%s-%d", a, b, i)
		org := synthOrgs[rng.IntN(len(synthOrgs))]
		owner := org
		if owner == "" {
			owner = "someone"
		}

		items = append(items, Item{
			ID:           int64(100000 + i),
			Name:         name,
			CreatedAt:    created,
			Stars:        stars,
			Category:     synthLanguages[rng.IntN(len(synthLanguages))],
			Description:  fmt.Sprintf("A **%s** toolkit for %s research. See [docs](https://example.org/%s).", a, b, name),
			URL:          "https://github.com/" + owner + "/" + name,
			Organization: org,
			UpdatedAt:    created.Add(time.Duration(rng.Int64N(int64(now.Sub(created)) + 1))),
			Topics:       []string{a, strings.ToLower(b)},
		})
	}
	return items
}
