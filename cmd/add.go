package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fakeyudi/timetrack/internal/tracker"
)

var (
	addColor    string
	addIcon     string
	addID       string
	addActive   bool
	addInactive bool
)

var addCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Register a new activity",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := strings.TrimSpace(args[0])
		if name == "" {
			return fmt.Errorf("activity name must not be empty")
		}
		if addActive && addInactive {
			return fmt.Errorf("--active and --inactive are mutually exclusive")
		}
		active := GetConfig().StartActive()
		switch {
		case addActive:
			active = true
		case addInactive:
			active = false
		}

		ws, err := openWorkspace()
		if err != nil {
			return err
		}
		for _, a := range ws.engine.ListActivities() {
			if strings.EqualFold(a.Name, name) {
				return fmt.Errorf("activity %q already exists (id %s)", a.Name, a.ID)
			}
		}

		a, err := ws.engine.RegisterActivity(tracker.Activity{
			ID:     addID,
			Name:   name,
			Color:  addColor,
			Icon:   addIcon,
			Active: active,
		})
		if err != nil {
			return err
		}
		if err := ws.commit(); err != nil {
			return err
		}

		state := "inactive"
		if a.Active {
			state = "tracking"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Added %s (%s), %s.\n", a.Name, a.ID, state)
		return nil
	},
}

func init() {
	addCmd.Flags().StringVar(&addColor, "color", "", "color token, e.g. green, blue, purple")
	addCmd.Flags().StringVar(&addIcon, "icon", "", "icon token (default "+tracker.DefaultIcon+")")
	addCmd.Flags().StringVar(&addID, "id", "", "explicit activity id (default: generated)")
	addCmd.Flags().BoolVar(&addActive, "active", false, "start tracking immediately")
	addCmd.Flags().BoolVar(&addInactive, "inactive", false, "register without tracking")
	rootCmd.AddCommand(addCmd)
}
