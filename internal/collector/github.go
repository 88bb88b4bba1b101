// Package collector fills the catalog store from the GitHub REST API.
package collector

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/HanHach/Codex-Numeris/internal/catalog"
)

// Paging limits of the GitHub endpoints.
const (
	OrgPageSize    = 100
	SearchPageSize = 50
	SearchPages    = 5
)

// Credentials come from the environment only.
type Credentials struct {
	Token  string `env:"GITHUB_TOKEN"`
	APIURL string `env:"GITHUB_API_URL" envDefault:"https://api.github.com"`
}

// LoadCredentials reads Credentials from the environment.
func LoadCredentials() (Credentials, error) {
	var c Credentials
	if err := env.Parse(&c); err != nil {
		return Credentials{}, fmt.Errorf("parse env: %w", err)
	}
	return c, nil
}

// Repo is the subset of a GitHub repository object the collector reads.
type Repo struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	Description *string  `json:"description"`
	HTMLURL     string   `json:"html_url"`
	Stars       int      `json:"stargazers_count"`
	Language    *string  `json:"language"`
	Fork        bool     `json:"fork"`
	CreatedAt   string   `json:"created_at"`
	UpdatedAt   string   `json:"updated_at"`
	Topics      []string `json:"topics"`
	Owner       struct {
		Login string `json:"login"`
	} `json:"owner"`
}

// Item converts the repository to a catalog item.
func (r Repo) Item() (catalog.Item, error) {
	created, err := catalog.ParseTime(r.CreatedAt)
	if err != nil {
		return catalog.Item{}, fmt.Errorf("repo %d created_at: %w", r.ID, err)
	}
	it := catalog.Item{
		ID:           r.ID,
		Name:         r.Name,
		CreatedAt:    created,
		Stars:        r.Stars,
		URL:          r.HTMLURL,
		Organization: r.Owner.Login,
		Topics:       r.Topics,
	}
	if r.Description != nil {
		it.Description = *r.Description
	}
	if r.Language != nil {
		it.Category = *r.Language
	}
	if updated, err := catalog.ParseTime(r.UpdatedAt); err == nil {
		it.UpdatedAt = updated
	}
	return it, nil
}

// Sink receives accepted projects.
type Sink interface {
	Upsert(ctx context.Context, it catalog.Item) error
}

// Options selects what to crawl.
type Options struct {
	Orgs    []string
	Queries []string
	Rules   Rules
	Now     func() time.Time
}

// Result summarizes a crawl.
type Result struct {
	Seen     int // distinct repositories returned by the API
	Accepted int
	Rejected map[string]int // by reason
}

// Collector crawls organizations and search queries into a Sink.
type Collector struct {
	creds    Credentials
	opts     Options
	sink     Sink
	http     *http.Client
	progress Reporter
}

// New creates a collector.
func New(creds Credentials, opts Options, sink Sink) *Collector {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Collector{
		creds:    creds,
		opts:     opts,
		sink:     sink,
		http:     &http.Client{Timeout: 30 * time.Second},
		progress: nopReporter{},
	}
}

// SetReporter installs a progress reporter.
func (c *Collector) SetReporter(r Reporter) {
	if r == nil {
		r = nopReporter{}
	}
	c.progress = r
}

// errStatus ends paging on a non-200 response.
var errStatus = errors.New("unexpected status")

// Run crawls every organization, then every query. Request failures end the
// current source and are logged; store failures and cancellation abort.
func (c *Collector) Run(ctx context.Context) (Result, error) {
	res := Result{Rejected: make(map[string]int)}
	seen := make(map[int64]bool)
	total := len(c.opts.Orgs) + len(c.opts.Queries)
	c.progress.Start(total)
	defer c.progress.Finish()

	consider := func(repos []Repo) error {
		now := c.opts.Now()
		for _, r := range repos {
			if seen[r.ID] {
				continue
			}
			seen[r.ID] = true
			res.Seen++
			if reason := c.opts.Rules.Reject(r, now); reason != "" {
				res.Rejected[reason]++
				continue
			}
			it, err := r.Item()
			if err != nil {
				res.Rejected["bad creation date"]++
				continue
			}
			if err := c.sink.Upsert(ctx, it); err != nil {
				return fmt.Errorf("store %s: %w", r.Name, err)
			}
			res.Accepted++
		}
		return nil
	}

	step := 0
	for _, org := range c.opts.Orgs {
		step++
		c.progress.Update(step, "org "+org)
		for page := 1; ; page++ {
			var repos []Repo
			err := c.get(ctx, c.orgURL(org, page), &repos)
			if err != nil {
				if ctx.Err() != nil {
					return res, ctx.Err()
				}
				if !errors.Is(err, errStatus) {
					log.Printf("collector: org %s page %d: %v", org, page, err)
				}
				break
			}
			if len(repos) == 0 {
				break
			}
			if err := consider(repos); err != nil {
				return res, err
			}
		}
	}

	for _, q := range c.opts.Queries {
		step++
		c.progress.Update(step, "search "+q)
		for page := 1; page <= SearchPages; page++ {
			var body struct {
				Items []Repo `json:"items"`
			}
			err := c.get(ctx, c.searchURL(q, page), &body)
			if err != nil {
				if ctx.Err() != nil {
					return res, ctx.Err()
				}
				log.Printf("collector: search %q page %d: %v", q, page, err)
				break
			}
			if len(body.Items) == 0 {
				break
			}
			if err := consider(body.Items); err != nil {
				return res, err
			}
		}
	}
	return res, nil
}

func (c *Collector) base() string {
	return strings.TrimRight(c.creds.APIURL, "/")
}

func (c *Collector) orgURL(org string, page int) string {
	v := url.Values{}
	v.Set("per_page", strconv.Itoa(OrgPageSize))
	v.Set("page", strconv.Itoa(page))
	return fmt.Sprintf("%s/orgs/%s/repos?%s", c.base(), url.PathEscape(org), v.Encode())
}

func (c *Collector) searchURL(q string, page int) string {
	v := url.Values{}
	v.Set("q", q)
	v.Set("per_page", strconv.Itoa(SearchPageSize))
	v.Set("page", strconv.Itoa(page))
	return fmt.Sprintf("%s/search/repositories?%s", c.base(), v.Encode())
}

func (c *Collector) get(ctx context.Context, u string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	if c.creds.Token != "" {
		req.Header.Set("Authorization", "token "+c.creds.Token)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("User-Agent", "CodexNumeris/1.0")
	req.Header.Set("X-GitHub-Api-Version", "2022-11-28")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: %s", errStatus, resp.Status)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
