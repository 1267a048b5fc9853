package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:   "delete <interval-id>",
	Short: "Delete a recorded interval",
	Long: "Delete a recorded interval. Deleting the interval an activity is currently\n" +
		"tracking stops that activity first.",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ws, err := openWorkspace()
		if err != nil {
			return err
		}
		if err := ws.engine.DeleteInterval(args[0]); err != nil {
			return err
		}
		if err := ws.commit(); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted interval %s.\n", args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}
