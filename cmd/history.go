package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fakeyudi/timetrack/internal/report"
)

var historyActivity string

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded intervals, most recent first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ws, err := openWorkspace()
		if err != nil {
			return err
		}
		r := report.Build(ws.engine, GetConfig().Seconds())

		if historyActivity != "" {
			a, err := resolveActivity(ws.engine, historyActivity)
			if err != nil {
				return err
			}
			filtered := r.Intervals[:0]
			for _, iv := range r.Intervals {
				if iv.ActivityID == a.ID {
					filtered = append(filtered, iv)
				}
			}
			r.Intervals = filtered
		}

		if len(r.Intervals) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No intervals recorded.")
			return nil
		}
		fmt.Fprint(cmd.OutOrStdout(), report.IntervalTable(r))
		return nil
	},
}

func init() {
	historyCmd.Flags().StringVarP(&historyActivity, "activity", "a", "", "only show intervals of this activity (id or name)")
	rootCmd.AddCommand(historyCmd)
}
