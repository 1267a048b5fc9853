package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var stopAll bool

var stopCmd = &cobra.Command{
	Use:   "stop [activity]",
	Short: "Stop tracking an activity, or every activity with --all",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if stopAll == (len(args) == 1) {
			return fmt.Errorf("give exactly one of <activity> or --all")
		}
		ws, err := openWorkspace()
		if err != nil {
			return err
		}

		if stopAll {
			stopped := 0
			for _, a := range ws.engine.ListActivities() {
				if !a.Active {
					continue
				}
				if err := toggleAndReport(cmd.OutOrStdout(), ws, a); err != nil {
					return err
				}
				stopped++
			}
			if stopped == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Nothing is being tracked.")
			}
			return nil
		}

		a, err := resolveActivity(ws.engine, args[0])
		if err != nil {
			return err
		}
		if !a.Active {
			return fmt.Errorf("not tracking %s", a.Name)
		}
		return toggleAndReport(cmd.OutOrStdout(), ws, a)
	},
}

func init() {
	stopCmd.Flags().BoolVar(&stopAll, "all", false, "stop every active activity")
	rootCmd.AddCommand(stopCmd)
}
