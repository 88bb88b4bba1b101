package config

// Config is the top-level galaxy configuration, corresponding to galaxy.yml.
type Config struct {
	Database  string          `yaml:"database" koanf:"database"`
	APIURL    string          `yaml:"api_url" koanf:"api_url"` // catalog endpoint; empty reads Database directly
	HTTP      HTTPConfig      `yaml:"http" koanf:"http"`
	SSH       SSHConfig       `yaml:"ssh" koanf:"ssh"`
	Galaxy    GalaxyConfig    `yaml:"galaxy" koanf:"galaxy"`
	Collector CollectorConfig `yaml:"collector" koanf:"collector"`
}

// HTTPConfig holds catalog API settings.
type HTTPConfig struct {
	Addr            string `yaml:"addr" koanf:"addr"`
	AllowAllOrigins bool   `yaml:"allow_all_origins" koanf:"allow_all_origins"`
}

// SSHConfig holds explorer server settings.
type SSHConfig struct {
	Addr    string `yaml:"addr" koanf:"addr"`
	HostKey string `yaml:"host_key" koanf:"host_key"`
}

// GalaxyConfig tunes the visualization.
type GalaxyConfig struct {
	Title           string `yaml:"title" koanf:"title"`
	MinDate         string `yaml:"min_date" koanf:"min_date"` // YYYY-MM-DD, start of the timeline
	FrameRate       int    `yaml:"frame_rate" koanf:"frame_rate"`
	BackgroundCount int    `yaml:"background_count" koanf:"background_count"`
	Seed            uint64 `yaml:"seed" koanf:"seed"` // 0 picks a random seed per session
}

// CollectorConfig selects what the GitHub collector crawls and keeps.
type CollectorConfig struct {
	Orgs           []string `yaml:"orgs" koanf:"orgs"`
	Queries        []string `yaml:"queries" koanf:"queries"`
	BadKeywords    []string `yaml:"bad_keywords" koanf:"bad_keywords"`
	MinStars       int      `yaml:"min_stars" koanf:"min_stars"`
	MinDescription int      `yaml:"min_description" koanf:"min_description"`
	MaxAgeMonths   int      `yaml:"max_age_months" koanf:"max_age_months"`
}
