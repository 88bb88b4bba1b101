package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/HanHach/Codex-Numeris/internal/catalog"
	"github.com/HanHach/Codex-Numeris/internal/render"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Summarize the catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		items, err := loadItems(cmd.Context(), cfg)
		if err != nil {
			return fmt.Errorf("loading catalog: %w", err)
		}

		s := catalog.Summarize(items)
		fmt.Printf("Projects:  %s\n", render.FormatCount(s.Total))
		if s.Total == 0 {
			return nil
		}
		fmt.Printf("Max stars: %s\n", render.FormatCount(s.MaxStars))
		fmt.Printf("Created:   %s to %s\n", s.Oldest.Format("2006-01-02"), s.Newest.Format("2006-01-02"))

		fmt.Println("\nLanguages:")
		for _, c := range s.Languages {
			fmt.Printf("  %-16s %6d\n", c.Label, c.N)
		}
		fmt.Println("\nYears:")
		for _, c := range s.Years {
			fmt.Printf("  %-16s %6d\n", c.Label, c.N)
		}
		return nil
	},
}

func init() {
	addSourceFlags(statsCmd)
	rootCmd.AddCommand(statsCmd)
}
