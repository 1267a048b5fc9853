package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var startCmd = &cobra.Command{
	Use:   "start <activity>",
	Short: "Start tracking an activity",
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
		if a.Active {
			return fmt.Errorf("already tracking %s", a.Name)
		}
		return toggleAndReport(cmd.OutOrStdout(), ws, a)
	},
}

func init() {
	rootCmd.AddCommand(startCmd)
}
