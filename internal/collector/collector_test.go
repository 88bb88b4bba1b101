package collector

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/HanHach/Codex-Numeris/internal/catalog"
)

var testNow = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

func str(s string) *string { return &s }

func repo(id int64, name string, stars int) Repo {
	r := Repo{
		ID:          id,
		Name:        name,
		Description: str("A genuinely useful research tool"),
		HTMLURL:     "https://github.com/lab/" + name,
		Stars:       stars,
		Language:    str("Python"),
		CreatedAt:   "2020-02-02T10:00:00Z",
		UpdatedAt:   "2025-01-15T00:00:00Z",
		Topics:      []string{"science"},
	}
	r.Owner.Login = "lab"
	return r
}

func TestRulesReject(t *testing.T) {
	rules := DefaultRules()
	tests := []struct {
		name   string
		mutate func(*Repo)
		want   string
	}{
		{"passes", func(*Repo) {}, ""},
		{"nil description", func(r *Repo) { r.Description = nil }, "short description"},
		{"padded description", func(r *Repo) { r.Description = str("   short   ") }, "short description"},
		{"ten characters", func(r *Repo) { r.Description = str("  exactly10!  ") }, ""},
		{"nine stars", func(r *Repo) { r.Stars = 9 }, "too few stars"},
		{"ten stars", func(r *Repo) { r.Stars = 10 }, ""},
		{"fork", func(r *Repo) { r.Fork = true }, "fork"},
		{"no update", func(r *Repo) { r.UpdatedAt = "" }, "no update date"},
		{"stale", func(r *Repo) { r.UpdatedAt = "2022-01-01T00:00:00Z" }, "stale"},
		{"homework", func(r *Repo) { r.Name = "CS50-Homework-Solutions" }, "coursework name"},
		{"pset", func(r *Repo) { r.Name = "pset3-filter" }, "coursework name"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := repo(1, "tool", 50)
			tt.mutate(&r)
			if got := rules.Reject(r, testNow); got != tt.want {
				t.Errorf("Reject = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRepoItem(t *testing.T) {
	r := repo(42, "tool", 50)
	r.Language = nil
	it, err := r.Item()
	if err != nil {
		t.Fatalf("Item: %v", err)
	}
	if it.ID != 42 || it.URL != "https://github.com/lab/tool" || it.Organization != "lab" {
		t.Errorf("item = %+v", it)
	}
	if it.Category != "" {
		t.Errorf("Category = %q, want empty for null language", it.Category)
	}
	if !it.CreatedAt.Equal(time.Date(2020, 2, 2, 10, 0, 0, 0, time.UTC)) {
		t.Errorf("CreatedAt = %v", it.CreatedAt)
	}

	r.CreatedAt = "yesterday"
	if _, err := r.Item(); err == nil {
		t.Error("bad created_at should fail")
	}
}

func fakeGitHub(t *testing.T, hits *int32) *httptest.Server {
	t.Helper()
	fork := repo(2, "forked", 500)
	fork.Fork = true
	orgPage := []Repo{repo(1, "tool", 50), fork, repo(3, "week1-lab", 80)}
	searchPage := []Repo{repo(1, "tool", 50), repo(4, "atlas", 900)}

	mux := http.NewServeMux()
	mux.HandleFunc("/orgs/lab/repos", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(hits, 1)
		if got := r.Header.Get("Authorization"); got != "token secret" {
			t.Errorf("Authorization = %q", got)
		}
		if got := r.URL.Query().Get("per_page"); got != "100" {
			t.Errorf("per_page = %q, want 100", got)
		}
		if r.URL.Query().Get("page") == "1" {
			json.NewEncoder(w).Encode(orgPage)
			return
		}
		w.Write([]byte("[]"))
	})
	mux.HandleFunc("/orgs/gone/repos", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(hits, 1)
		http.NotFound(w, r)
	})
	mux.HandleFunc("/search/repositories", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(hits, 1)
		if got := r.URL.Query().Get("per_page"); got != "50" {
			t.Errorf("per_page = %q, want 50", got)
		}
		items := []Repo{}
		if r.URL.Query().Get("page") == "1" {
			items = searchPage
		}
		json.NewEncoder(w).Encode(map[string]any{"total_count": len(items), "items": items})
	})
	return httptest.NewServer(mux)
}

func TestCollectorRun(t *testing.T) {
	var hits int32
	srv := fakeGitHub(t, &hits)
	defer srv.Close()

	store, err := catalog.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	defer store.Close()

	c := New(Credentials{Token: "secret", APIURL: srv.URL + "/"}, Options{
		Orgs:    []string{"lab", "gone"},
		Queries: []string{"harvard deep learning stars:>10"},
		Rules:   DefaultRules(),
		Now:     func() time.Time { return testNow },
	}, store)

	res, err := c.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Seen != 4 {
		t.Errorf("Seen = %d, want 4 distinct repos", res.Seen)
	}
	if res.Accepted != 2 {
		t.Errorf("Accepted = %d, want 2", res.Accepted)
	}
	if res.Rejected["fork"] != 1 || res.Rejected["coursework name"] != 1 {
		t.Errorf("Rejected = %v", res.Rejected)
	}
	// lab: pages 1 and 2; gone: page 1; search: pages 1 and 2
	if n := atomic.LoadInt32(&hits); n != 5 {
		t.Errorf("requests = %d, want 5", n)
	}

	items, err := store.Projects(context.Background())
	if err != nil {
		t.Fatalf("Projects: %v", err)
	}
	if len(items) != 2 || items[0].Name != "tool" || items[1].Name != "atlas" {
		t.Errorf("stored = %+v", items)
	}
	if len(items[0].Topics) != 1 || items[0].Topics[0] != "science" {
		t.Errorf("topics = %v", items[0].Topics)
	}
}

func TestCollectorCanceled(t *testing.T) {
	var hits int32
	srv := fakeGitHub(t, &hits)
	defer srv.Close()

	store, err := catalog.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	defer store.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	c := New(Credentials{APIURL: srv.URL}, Options{Orgs: []string{"lab"}, Rules: DefaultRules()}, store)
	if _, err := c.Run(ctx); err == nil {
		t.Error("canceled run should fail")
	}
}

func TestLoadCredentials(t *testing.T) {
	t.Setenv("GITHUB_TOKEN", "abc")
	t.Setenv("GITHUB_API_URL", "unused")
	os.Unsetenv("GITHUB_API_URL")
	c, err := LoadCredentials()
	if err != nil {
		t.Fatalf("LoadCredentials: %v", err)
	}
	if c.Token != "abc" {
		t.Errorf("Token = %q", c.Token)
	}
	if c.APIURL != "https://api.github.com" {
		t.Errorf("APIURL = %q, want default", c.APIURL)
	}
}

type countingReporter struct{ starts, updates, finishes int }

func (r *countingReporter) Start(int)          { r.starts++ }
func (r *countingReporter) Update(int, string) { r.updates++ }
func (r *countingReporter) Finish()            { r.finishes++ }

func TestReporterCalls(t *testing.T) {
	var hits int32
	srv := fakeGitHub(t, &hits)
	defer srv.Close()
	store, err := catalog.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	defer store.Close()

	rep := &countingReporter{}
	c := New(Credentials{APIURL: srv.URL}, Options{
		Orgs:    []string{"gone"},
		Queries: []string{"q"},
		Rules:   DefaultRules(),
	}, store)
	c.SetReporter(rep)
	if _, err := c.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if rep.starts != 1 || rep.updates != 2 || rep.finishes != 1 {
		t.Errorf("reporter = %+v", rep)
	}
}
