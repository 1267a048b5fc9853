package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fakeyudi/timetrack/internal/tracker"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Register the sample activities (Free time, Work, Food, ...)",
	Long: "Register the sample activities that are not already present. Free time,\n" +
		"Work, Food and Productivity start tracking immediately; Groceries and Sleep\n" +
		"are added inactive. Existing activities are matched by name and left untouched.",
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ws, err := openWorkspace()
		if err != nil {
			return err
		}

		existing := make(map[string]bool)
		for _, a := range ws.engine.ListActivities() {
			existing[strings.ToLower(a.Name)] = true
		}

		added := 0
		for _, a := range tracker.SampleActivities() {
			if existing[strings.ToLower(a.Name)] {
				logger.Debug("seed: skipping existing activity", "name", a.Name)
				continue
			}
			if _, err := ws.engine.RegisterActivity(a); err != nil {
				return err
			}
			added++
		}
		if err := ws.commit(); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Added %d sample activities.\n", added)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
}
