// Package config loads galaxy settings from defaults, an optional YAML file
// and GALAXY_* environment variables, in that order.
package config

import (
	"fmt"
	"net"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"
)

// EnvPrefix marks environment overrides. A double underscore descends one
// level: GALAXY_HTTP__ADDR sets http.addr.
const EnvPrefix = "GALAXY_"

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	// Start from defaults.
	cfg := DefaultConfig()

	// Load YAML file if it exists.
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	// Lists are replaced, not merged element-wise into the defaults.
	for key, list := range map[string]*[]string{
		"collector.orgs":         &cfg.Collector.Orgs,
		"collector.queries":      &cfg.Collector.Queries,
		"collector.bad_keywords": &cfg.Collector.BadKeywords,
	} {
		if k.Exists(key) {
			*list = nil
		}
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}
	return cfg, nil
}

func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(s, "__", ".")
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// Validate checks that the configuration contains valid values.
func (c *Config) Validate() error {
	if c.Database == "" {
		return fmt.Errorf("database is required")
	}
	if c.APIURL != "" {
		u, err := url.Parse(c.APIURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("invalid api_url %q: must be an http(s) URL", c.APIURL)
		}
	}
	if err := validAddr("http.addr", c.HTTP.Addr); err != nil {
		return err
	}
	if err := validAddr("ssh.addr", c.SSH.Addr); err != nil {
		return err
	}
	if c.SSH.HostKey == "" {
		return fmt.Errorf("ssh.host_key is required")
	}
	if _, err := c.MinDate(); err != nil {
		return err
	}
	if c.Galaxy.FrameRate < 1 || c.Galaxy.FrameRate > 120 {
		return fmt.Errorf("galaxy.frame_rate must be between 1 and 120, got %d", c.Galaxy.FrameRate)
	}
	if c.Galaxy.BackgroundCount < 0 {
		return fmt.Errorf("galaxy.background_count must be non-negative")
	}
	if c.Collector.MinStars < 0 || c.Collector.MinDescription < 0 {
		return fmt.Errorf("collector thresholds must be non-negative")
	}
	if c.Collector.MaxAgeMonths < 1 {
		return fmt.Errorf("collector.max_age_months must be at least 1")
	}
	return nil
}

func validAddr(key, addr string) error {
	if addr == "" {
		return fmt.Errorf("%s is required", key)
	}
	if _, _, err := net.SplitHostPort(addr); err != nil {
		return fmt.Errorf("invalid %s %q: %w", key, addr, err)
	}
	return nil
}

// MinDate parses galaxy.min_date as a UTC date.
func (c *Config) MinDate() (time.Time, error) {
	t, err := time.Parse(time.DateOnly, c.Galaxy.MinDate)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid galaxy.min_date %q: want YYYY-MM-DD", c.Galaxy.MinDate)
	}
	return t, nil
}

// MaxAge converts collector.max_age_months to a duration of 30-day months.
func (c *Config) MaxAge() time.Duration {
	return time.Duration(c.Collector.MaxAgeMonths) * 30 * 24 * time.Hour
}

// WithPort replaces the port of the SSH address, keeping its host.
func (c *Config) WithPort(port string) {
	host, _, err := net.SplitHostPort(c.SSH.Addr)
	if err != nil {
		host = ""
	}
	c.SSH.Addr = net.JoinHostPort(host, port)
}
