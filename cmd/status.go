package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/fakeyudi/timetrack/internal/report"
	"github.com/fakeyudi/timetrack/internal/tracker"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show every activity with its latest window and total time",
	RunE: func(cmd *cobra.Command, args []string) error {
		ws, err := openWorkspace()
		if err != nil {
			return err
		}
		printStatus(cmd.OutOrStdout(), ws.engine)
		return nil
	},
}

func printStatus(w io.Writer, e *tracker.Engine) {
	r := report.Build(e, GetConfig().Seconds())
	if len(r.Activities) == 0 {
		fmt.Fprintln(w, "No activities yet. Add one with `timetrack add <name>` or run `timetrack seed`.")
		return
	}
	fmt.Fprint(w, report.ActivityTable(r))
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
