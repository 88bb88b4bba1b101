package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// ErrFetch marks a failure to obtain the catalog from its source.
var ErrFetch = errors.New("catalog: fetch failed")

// ErrNotFound is returned when a project lookup has no match.
var ErrNotFound = errors.New("catalog: not found")

// Item is one project of the catalog. Items are immutable once loaded.
type Item struct {
	ID           int64
	Name         string
	CreatedAt    time.Time
	Stars        int
	Category     string // primary language, "" when unknown
	Description  string
	URL          string
	Organization string // owner login, "" when unknown

	// Collector metadata, never read by the galaxy.
	UpdatedAt time.Time
	Topics    []string
}

// Source yields the full catalog.
type Source interface {
	Projects(ctx context.Context) ([]Item, error)
}

// projectJSON is the wire format of GET /api/projects.
type projectJSON struct {
	ID           int64   `json:"id,omitempty"`
	Name         string  `json:"name"`
	URL          string  `json:"url"`
	Stars        int     `json:"stars"`
	CreatedAt    string  `json:"created_at"`
	Language     *string `json:"language"`
	Description  *string `json:"description"`
	Organization *string `json:"organization"`
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// MarshalJSON encodes the item in the API wire format.
func (it Item) MarshalJSON() ([]byte, error) {
	return json.Marshal(projectJSON{
		ID:           it.ID,
		Name:         it.Name,
		URL:          it.URL,
		Stars:        it.Stars,
		CreatedAt:    it.CreatedAt.UTC().Format(time.RFC3339),
		Language:     optional(it.Category),
		Description:  optional(it.Description),
		Organization: optional(it.Organization),
	})
}

// UnmarshalJSON decodes the API wire format.
func (it *Item) UnmarshalJSON(data []byte) error {
	var p projectJSON
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	created, err := ParseTime(p.CreatedAt)
	if err != nil {
		return fmt.Errorf("project %q: created_at: %w", p.Name, err)
	}
	if p.Stars < 0 {
		return fmt.Errorf("project %q: negative stars %d", p.Name, p.Stars)
	}
	*it = Item{
		ID:           p.ID,
		Name:         p.Name,
		CreatedAt:    created,
		Stars:        p.Stars,
		Category:     deref(p.Language),
		Description:  deref(p.Description),
		URL:          p.URL,
		Organization: deref(p.Organization),
	}
	return nil
}

// timeLayouts are the accepted spellings of created_at. The collector's
// source sometimes drops the zone designator.
var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseTime parses an ISO-8601 timestamp. Zone-less values are taken as UTC.
func ParseTime(s string) (time.Time, error) {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
}
