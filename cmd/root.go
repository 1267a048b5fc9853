package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/fakeyudi/timetrack/internal/config"
	"github.com/fakeyudi/timetrack/internal/logging"
)

// cfg holds the merged configuration, populated in PersistentPreRunE.
var cfg config.Config

// logger is built from the merged log level in PersistentPreRunE.
var logger = slog.New(slog.NewTextHandler(io.Discard, nil))

// Persistent flag values; empty means "use config".
var (
	flagLogLevel string
	flagDataDir  string
)

var rootCmd = &cobra.Command{
	Use:          "timetrack",
	Short:        "Track time spent on activities from the terminal",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Load and merge config files, then apply environment overrides.
		global, err := config.LoadGlobal()
		if err != nil {
			return fmt.Errorf("loading global config: %w", err)
		}
		project, err := config.LoadProject()
		if err != nil {
			return fmt.Errorf("loading project config: %w", err)
		}
		cfg = config.ApplyEnv(config.Merge(global, project))

		if flagLogLevel != "" {
			cfg.LogLevel = flagLogLevel
		}
		if flagDataDir != "" {
			cfg.DataDir = flagDataDir
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		logger = logging.New(cmd.ErrOrStderr(), cfg.LogLevel)
		logger.Debug("config loaded", "data_dir", cfg.DataDir, "refresh", cfg.RefreshInterval)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "directory holding state.json")
}

// Execute runs the root command. Exits with code 1 on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// GetConfig returns the merged configuration for use by subcommands.
func GetConfig() config.Config {
	return cfg
}
