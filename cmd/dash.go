package cmd

import (
	"context"
	"io"
	"os"

	"github.com/charmbracelet/x/term"
	"github.com/spf13/cobra"

	"github.com/fakeyudi/timetrack/internal/store"
	"github.com/fakeyudi/timetrack/internal/tracker"
	"github.com/fakeyudi/timetrack/internal/tui"
)

var dashCmd = &cobra.Command{
	Use:   "dash",
	Short: "Open the live dashboard",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ws, err := openWorkspace()
		if err != nil {
			return err
		}

		// Pipes and tests get the plain status table.
		if !interactive(cmd.OutOrStdout()) {
			printStatus(cmd.OutOrStdout(), ws.engine)
			return nil
		}

		refresh, err := GetConfig().Refresh()
		if err != nil {
			return err
		}

		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()
		changes, err := store.Watch(ctx, ws.store.Path())
		if err != nil {
			// Live reload is optional; the dashboard still works without it.
			logger.Warn("watching state file failed", "path", ws.store.Path(), "error", err)
			changes = nil
		}

		st := ws.store
		return tui.Run(ws.engine, tui.Options{
			Refresh:     refresh,
			ShowSeconds: GetConfig().Seconds(),
			Save:        func(e *tracker.Engine) error { return st.Save(e.Snapshot()) },
			Reload:      func() (*tracker.Engine, error) { return loadEngine(st) },
			Changes:     changes,
			Source:      st.Path(),
		})
	},
}

func init() {
	rootCmd.AddCommand(dashCmd)
}

// interactive reports whether w is a terminal the dashboard can take over.
func interactive(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(f.Fd())
}
