package config

// DefaultPath is the config file read when --config is not given.
const DefaultPath = "galaxy.yml"

// defaultOrgs are the GitHub organizations crawled by default.
var defaultOrgs = []string{
	"harvard", "harvard-lil", "huit", "cga-harvard",
	"harvard-library", "hms-dbmi", "harvardnlp", "IQSS",
	"berkmancenter", "cid-harvard", "mahmoodlab",
	"Harvard-Ophthalmology-AI-Lab", "sorgerlab", "harvard-acc",
	"churchlab", "broadinstitute",
}

var defaultQueries = []string{
	"harvard.edu in:readme pushed:>2024-01-01 stars:>10",
	"harvard bioinformatics stars:>10",
	"harvard deep learning neural network stars:>10",
	"cs50 harvard stars:>10",
}

var defaultBadKeywords = []string{
	"pset1", "pset2", "pset3", "pset4", "pset5",
	"week1", "week2", "homework", "assignment", "final-project",
}

// DefaultConfig returns a Config populated with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Database: "projects.db",
		HTTP: HTTPConfig{
			Addr: ":8080",
		},
		SSH: SSHConfig{
			Addr:    ":2222",
			HostKey: "host_key",
		},
		Galaxy: GalaxyConfig{
			Title:           "Codex Numeris",
			MinDate:         "2013-01-01",
			FrameRate:       30,
			BackgroundCount: 1500,
		},
		Collector: CollectorConfig{
			Orgs:           append([]string(nil), defaultOrgs...),
			Queries:        append([]string(nil), defaultQueries...),
			BadKeywords:    append([]string(nil), defaultBadKeywords...),
			MinStars:       10,
			MinDescription: 10,
			MaxAgeMonths:   24,
		},
	}
}
