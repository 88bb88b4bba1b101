package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/HanHach/Codex-Numeris/internal/catalog"
	"github.com/HanHach/Codex-Numeris/internal/collector"
)

var collectCmd = &cobra.Command{
	Use:   "collect",
	Short: "Crawl GitHub into the catalog database",
	Long: `Collect lists the repositories of the configured organizations and
search queries, keeps those that pass the quality rules and upserts them into
the catalog database. Set GITHUB_TOKEN to raise the API rate limit.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		creds, err := collector.LoadCredentials()
		if err != nil {
			return err
		}
		if creds.Token == "" {
			fmt.Fprintln(os.Stderr, "Warning: GITHUB_TOKEN is not set; requests are rate limited")
		}

		store, err := catalog.Open(cfg.Database)
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}
		defer store.Close()

		c := collector.New(creds, collector.Options{
			Orgs:    cfg.Collector.Orgs,
			Queries: cfg.Collector.Queries,
			Rules: collector.Rules{
				MinStars:       cfg.Collector.MinStars,
				MinDescription: cfg.Collector.MinDescription,
				MaxAge:         cfg.MaxAge(),
				BadKeywords:    cfg.Collector.BadKeywords,
			},
		}, store)
		c.SetReporter(collector.NewReporter())

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		res, err := c.Run(ctx)
		printResult(res)
		if err != nil {
			return fmt.Errorf("collect: %w", err)
		}
		if n, err := store.Count(ctx); err == nil {
			fmt.Printf("Catalog %s now holds %d projects\n", store.Path(), n)
		}
		return nil
	},
}

func printResult(res collector.Result) {
	fmt.Printf("Seen %d repositories, accepted %d\n", res.Seen, res.Accepted)
	reasons := make([]string, 0, len(res.Rejected))
	for r := range res.Rejected {
		reasons = append(reasons, r)
	}
	sort.Strings(reasons)
	for _, r := range reasons {
		fmt.Printf("  rejected %-20s %d\n", r+":", res.Rejected[r])
	}
}

func init() {
	rootCmd.AddCommand(collectCmd)
}
