package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fakeyudi/timetrack/internal/report"
)

var (
	reportFormat string
	reportOutput string
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Render a report of tracked time",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		format := reportFormat
		if format == "" {
			format = GetConfig().DefaultFormat
		}
		renderer, err := report.RendererFor(format)
		if err != nil {
			return err
		}

		ws, err := openWorkspace()
		if err != nil {
			return err
		}
		data, err := renderer.Render(report.Build(ws.engine, GetConfig().Seconds()))
		if err != nil {
			return fmt.Errorf("rendering report: %w", err)
		}

		if reportOutput == "" || reportOutput == "-" {
			_, err = cmd.OutOrStdout().Write(data)
			return err
		}
		if err := os.WriteFile(reportOutput, data, 0o644); err != nil {
			return fmt.Errorf("writing report: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", reportOutput)
		return nil
	},
}

func init() {
	reportCmd.Flags().StringVarP(&reportFormat, "format", "f", "", "text, markdown, json or yaml (default from config)")
	reportCmd.Flags().StringVarP(&reportOutput, "output", "o", "", "write to file instead of stdout")
	rootCmd.AddCommand(reportCmd)
}
