package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fyrsmithlabs/keepsake/internal/journey"
)

// scenesCmd lists the story scenes in order
var scenesCmd = &cobra.Command{
	Use:   "scenes",
	Short: "List the story scenes in order",
	Long:  "List the story scenes in order. Scenes marked * must be finished before the story continues.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		interactive := make(map[journey.Scene]bool)
		for _, s := range journey.DefaultInteractive() {
			interactive[s] = true
		}
		out := cmd.OutOrStdout()
		for i, s := range journey.DefaultScenes() {
			mark := " "
			if interactive[s] {
				mark = "*"
			}
			if _, err := fmt.Fprintf(out, "%2d %s %s\n", i+1, mark, s); err != nil {
				return err
			}
		}
		return nil
	},
}
