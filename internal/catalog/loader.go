package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// LoadFile reads a JSON dataset in the GET /api/projects format from disk.
func LoadFile(path string) ([]Item, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read dataset file: %w", err)
	}

	var items []Item
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("parse dataset JSON: %w", err)
	}
	return items, nil
}

// FileSource serves a dataset file as a catalog Source.
type FileSource string

// Projects loads the file on every call.
func (f FileSource) Projects(ctx context.Context) ([]Item, error) {
	items, err := LoadFile(string(f))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetch, err)
	}
	return items, nil
}

// StaticSource serves an in-memory dataset.
type StaticSource []Item

// Projects returns the dataset.
func (s StaticSource) Projects(ctx context.Context) ([]Item, error) {
	return s, nil
}

// Lookup adds by-ID reads to any Source, for serving it over the HTTP API.
type Lookup struct {
	Source
}

// Project scans the source for id.
func (l Lookup) Project(ctx context.Context, id int64) (Item, error) {
	items, err := l.Projects(ctx)
	if err != nil {
		return Item{}, err
	}
	for _, it := range items {
		if it.ID == id {
			return it, nil
		}
	}
	return Item{}, fmt.Errorf("project %d: %w", id, ErrNotFound)
}

// WriteFile stores items as a JSON dataset readable by LoadFile.
func WriteFile(path string, items []Item) error {
	if items == nil {
		items = []Item{}
	}
	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("encode dataset JSON: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write dataset file: %w", err)
	}
	return nil
}

// Problem is one validation finding.
type Problem struct {
	Index int
	Name  string
	Msg   string
}

func (p Problem) String() string {
	return fmt.Sprintf("#%d %q: %s", p.Index, p.Name, p.Msg)
}

// Validate checks a dataset for records the galaxy cannot place sensibly.
func Validate(items []Item) []Problem {
	var problems []Problem
	seen := make(map[int64]int)

	for i, it := range items {
		report := func(format string, args ...any) {
			problems = append(problems, Problem{Index: i, Name: it.Name, Msg: fmt.Sprintf(format, args...)})
		}

		if strings.TrimSpace(it.Name) == "" {
			report("empty name")
		}
		if it.CreatedAt.IsZero() {
			report("missing created_at")
		}
		if it.Stars < 0 {
			report("negative stars %d", it.Stars)
		}
		if it.URL != "" && !strings.HasPrefix(it.URL, "http://") && !strings.HasPrefix(it.URL, "https://") {
			report("url %q is not http(s)", it.URL)
		}
		if it.ID != 0 {
			if prev, dup := seen[it.ID]; dup {
				report("duplicate id %d (first at #%d)", it.ID, prev)
			} else {
				seen[it.ID] = i
			}
		}
	}
	return problems
}
