package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/HanHach/Codex-Numeris/internal/catalog"
)

var validateCmd = &cobra.Command{
	Use:   "validate <dataset.json>",
	Short: "Check a JSON dataset for records the galaxy cannot place",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		items, err := catalog.LoadFile(args[0])
		if err != nil {
			return err
		}
		problems := catalog.Validate(items)
		for _, p := range problems {
			fmt.Println(p)
		}
		if len(problems) > 0 {
			return fmt.Errorf("%d problems in %d records", len(problems), len(items))
		}
		fmt.Printf("%s: %d records OK\n", args[0], len(items))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
