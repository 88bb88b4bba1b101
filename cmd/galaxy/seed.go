package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/HanHach/Codex-Numeris/internal/catalog"
)

var (
	seedCount int
	seedOut   string
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Generate a synthetic catalog",
	Long: `Seed generates plausible fake projects, either into the catalog
database or, with --out, into a JSON dataset file usable with --data.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if seedCount < 1 {
			return fmt.Errorf("--count must be positive")
		}
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		items := catalog.Synthesize(seedCount, newRand(cfg.Galaxy.Seed), time.Now())

		if seedOut != "" {
			if err := catalog.WriteFile(seedOut, items); err != nil {
				return err
			}
			fmt.Printf("Wrote %d projects to %s\n", len(items), seedOut)
			return nil
		}

		store, err := catalog.Open(cfg.Database)
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}
		defer store.Close()
		for _, it := range items {
			if err := store.Upsert(cmd.Context(), it); err != nil {
				return err
			}
		}
		fmt.Printf("Stored %d projects in %s\n", len(items), store.Path())
		return nil
	},
}

func init() {
	seedCmd.Flags().IntVar(&seedCount, "count", 500, "number of projects")
	seedCmd.Flags().StringVar(&seedOut, "out", "", "write a JSON dataset instead of the database")
	rootCmd.AddCommand(seedCmd)
}
