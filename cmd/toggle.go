package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/fakeyudi/timetrack/internal/duration"
	"github.com/fakeyudi/timetrack/internal/tracker"
)

var toggleCmd = &cobra.Command{
	Use:   "toggle <activity>",
	Short: "Start or stop tracking an activity",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ws, err := openWorkspace()
		if err != nil {
			return err
		}
		a, err := resolveActivity(ws.engine, args[0])
		if err != nil {
			return err
		}
		return toggleAndReport(cmd.OutOrStdout(), ws, a)
	},
}

// toggleAndReport flips a, saves, and prints what happened.
func toggleAndReport(w io.Writer, ws *workspace, a tracker.Activity) error {
	// Captured before the toggle closes it.
	open, wasOpen := ws.engine.OpenInterval(a.ID)

	updated, err := ws.engine.Toggle(a.ID)
	if err != nil {
		return err
	}
	if err := ws.commit(); err != nil {
		return err
	}

	if updated.Active {
		fmt.Fprintf(w, "Started %s at %s.\n", updated.Name, ws.engine.Now().Local().Format("15:04"))
		return nil
	}
	if wasOpen {
		elapsed, _ := ws.engine.Elapsed(open.ID)
		fmt.Fprintf(w, "Stopped %s after %s.\n", updated.Name, duration.Format(elapsed, GetConfig().Seconds()))
		return nil
	}
	fmt.Fprintf(w, "Stopped %s.\n", updated.Name)
	return nil
}

func init() {
	rootCmd.AddCommand(toggleCmd)
}
