package main

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/spf13/cobra"

	"github.com/HanHach/Codex-Numeris/internal/catalog"
	"github.com/HanHach/Codex-Numeris/internal/config"
	"github.com/HanHach/Codex-Numeris/internal/explore"
)

var (
	cfgFile  string
	dataFile string
	demoSize int
)

var rootCmd = &cobra.Command{
	Use:   "galaxy",
	Short: "Explore a project catalog as a galaxy of stars",
	Long: `Codex Numeris lays out a catalog of open-source projects as a galaxy:
creation date runs left to right, popularity bottom to top. Explore it in the
terminal, serve it over SSH, or collect the catalog from GitHub.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", config.DefaultPath, "config file path")
}

// addSourceFlags registers the flags that replace the configured catalog.
func addSourceFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&dataFile, "data", "", "read the catalog from a JSON dataset file")
	cmd.Flags().IntVar(&demoSize, "demo", 0, "use N synthetic projects instead of the catalog")
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func frameOptions(cfg *config.Config) (explore.Options, error) {
	minDate, err := cfg.MinDate()
	if err != nil {
		return explore.Options{}, err
	}
	return explore.Options{
		Title:           cfg.Galaxy.Title,
		MinDate:         minDate,
		BackgroundCount: cfg.Galaxy.BackgroundCount,
		Seed:            cfg.Galaxy.Seed,
		FrameRate:       cfg.Galaxy.FrameRate,
	}, nil
}

func newRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = rand.Uint64()
	}
	return rand.New(rand.NewPCG(seed, seed>>1))
}

// openSource picks the catalog: --demo, then --data, then api_url, then the
// database. The returned close function is never nil.
func openSource(cfg *config.Config) (catalog.Source, func() error, error) {
	noop := func() error { return nil }
	switch {
	case demoSize > 0:
		return catalog.StaticSource(catalog.Synthesize(demoSize, newRand(cfg.Galaxy.Seed), time.Now())), noop, nil
	case dataFile != "":
		return catalog.FileSource(dataFile), noop, nil
	case cfg.APIURL != "":
		return catalog.NewClient(cfg.APIURL), noop, nil
	}
	store, err := catalog.Open(cfg.Database)
	if err != nil {
		return nil, noop, fmt.Errorf("opening database: %w", err)
	}
	return store, store.Close, nil
}

// loadItems reads the whole catalog once.
func loadItems(ctx context.Context, cfg *config.Config) ([]catalog.Item, error) {
	src, closeFn, err := openSource(cfg)
	if err != nil {
		return nil, err
	}
	defer closeFn()
	return src.Projects(ctx)
}
