package collector

import (
	"log"
	"os"

	"github.com/schollz/progressbar/v3"
)

// Reporter provides progress feedback during a crawl.
type Reporter interface {
	Start(total int)
	Update(current int, message string)
	Finish()
}

// NewReporter returns a BarReporter when running interactively, or a
// LogReporter under CI.
func NewReporter() Reporter {
	if os.Getenv("CI") != "" || os.Getenv("GITHUB_ACTIONS") != "" {
		return &LogReporter{}
	}
	return &BarReporter{}
}

// BarReporter displays a progress bar in the terminal.
type BarReporter struct {
	bar *progressbar.ProgressBar
}

func (r *BarReporter) Start(total int) {
	r.bar = progressbar.NewOptions(total,
		progressbar.OptionSetDescription("Collecting"),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)
}

func (r *BarReporter) Update(current int, message string) {
	if r.bar != nil {
		r.bar.Describe(message)
		_ = r.bar.Set(current)
	}
}

func (r *BarReporter) Finish() {
	if r.bar != nil {
		_ = r.bar.Finish()
	}
}

// LogReporter prints one log line per source.
type LogReporter struct {
	total int
}

func (r *LogReporter) Start(total int) { r.total = total }

func (r *LogReporter) Update(current int, message string) {
	log.Printf("[%d/%d] %s", current, r.total, message)
}

func (r *LogReporter) Finish() {}

type nopReporter struct{}

func (nopReporter) Start(int)          {}
func (nopReporter) Update(int, string) {}
func (nopReporter) Finish()            {}
