package collector

import (
	"strings"
	"time"
	"unicode/utf8"
)

// Quality thresholds used when a config leaves them unset.
const (
	DefaultMinStars       = 10
	DefaultMinDescription = 10 // characters, after trimming
	DefaultMaxAge         = 30 * 24 * 24 * time.Hour
)

// DefaultBadKeywords mark coursework repositories by name.
var DefaultBadKeywords = []string{
	"pset1", "pset2", "pset3", "pset4", "pset5",
	"week1", "week2", "homework", "assignment", "final-project",
}

// Rules decide which repositories enter the catalog.
type Rules struct {
	MinStars       int
	MinDescription int
	MaxAge         time.Duration // since the last update
	BadKeywords    []string      // matched against the lowercased name
}

// DefaultRules returns the standard quality bar.
func DefaultRules() Rules {
	return Rules{
		MinStars:       DefaultMinStars,
		MinDescription: DefaultMinDescription,
		MaxAge:         DefaultMaxAge,
		BadKeywords:    DefaultBadKeywords,
	}
}

// Reject returns why r fails the rules at time now, "" when it passes.
func (q Rules) Reject(r Repo, now time.Time) string {
	desc := ""
	if r.Description != nil {
		desc = strings.TrimSpace(*r.Description)
	}
	if utf8.RuneCountInString(desc) < q.MinDescription {
		return "short description"
	}
	if r.Stars < q.MinStars {
		return "too few stars"
	}
	if r.Fork {
		return "fork"
	}
	if r.UpdatedAt == "" {
		return "no update date"
	}
	updated, err := time.Parse(time.RFC3339, r.UpdatedAt)
	if err != nil {
		return "bad update date"
	}
	if updated.Before(now.Add(-q.MaxAge)) {
		return "stale"
	}
	name := strings.ToLower(r.Name)
	for _, kw := range q.BadKeywords {
		if strings.Contains(name, strings.ToLower(kw)) {
			return "coursework name"
		}
	}
	return ""
}

// IsQuality reports whether r passes the rules at time now.
func (q Rules) IsQuality(r Repo, now time.Time) bool {
	return q.Reject(r, now) == ""
}
