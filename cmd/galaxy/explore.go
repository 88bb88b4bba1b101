package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/HanHach/Codex-Numeris/internal/tui"
)

var exploreLog string

var exploreCmd = &cobra.Command{
	Use:   "explore",
	Short: "Explore the galaxy in this terminal",
	Long: `Explore opens the galaxy full-screen. Drag or use wasd to pan, scroll
or +/- to zoom, c and y to cycle the language and year filters, r to reset,
click a star to open its repository, q to quit.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		opts, err := frameOptions(cfg)
		if err != nil {
			return err
		}

		// The screen owns the terminal; log lines would corrupt it.
		log.SetOutput(io.Discard)
		if exploreLog != "" {
			f, err := os.OpenFile(exploreLog, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0644)
			if err != nil {
				return fmt.Errorf("opening log: %w", err)
			}
			defer f.Close()
			log.SetOutput(f)
		}

		source, closeSource, err := openSource(cfg)
		if err != nil {
			return err
		}
		defer closeSource()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return tui.Run(ctx, source, opts)
	},
}

func init() {
	exploreCmd.Flags().StringVar(&exploreLog, "log", "", "append log output to this file")
	addSourceFlags(exploreCmd)
	rootCmd.AddCommand(exploreCmd)
}
