package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/okian/materiality/internal/config"
	"github.com/okian/materiality/pkg/logger"
)

// Set by the linker at release time.
var version = "dev" //nolint:gochecknoglobals // linker flag

// cfg holds the configuration loaded before any subcommand runs.
var cfg = &config.Config{} //nolint:gochecknoglobals // shared by subcommands

var configFile string //nolint:gochecknoglobals // flag value

var rootCmd = &cobra.Command{ //nolint:gochecknoglobals // cobra root
	Use:           "materiality",
	Short:         "Plot ESG double-materiality charts.",
	Long:          `Materiality maps ESG topics onto a financial/impact scatter, spreads overlapping points, ranks them and serves the charts over HTTP, the CLI and MCP.`,
	Version:       version,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		return setup(cmd)
	},
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "YAML config file (defaults to $"+config.EnvConfigFile+")")
}

// setup loads configuration (defaults -> file -> env) and initializes logging.
// Logs go to stderr so stdout stays free for command output and MCP frames.
func setup(cmd *cobra.Command) error {
	path := configFile
	if path == "" {
		path = os.Getenv(config.EnvConfigFile)
	}
	loaded, err := config.LoadFile(cmd.Context(), path)
	if err != nil {
		return err
	}
	cfg = loaded

	if err := logger.Init(logger.WithFormat(cfg.LogFormat), logger.WithOutput(os.Stderr)); err != nil {
		return err
	}
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		logger.Get().Warn(cmd.Context(), "invalid log_level; falling back to info",
			logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}
	return nil
}
