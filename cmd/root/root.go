// Package root contains the root command for the application
package root

import (
	"fmt"

	"github.com/spf13/cobra"

	"fjacquet/finassist/internal/config"
	"fjacquet/finassist/internal/container"
	"fjacquet/finassist/internal/logging"
)

var (
	// Log is the shared logger instance for commands
	Log logging.Logger = logging.NewLogrusAdapter("info", "text")

	// AppContainer is built once in PersistentPreRunE and used by subcommands
	AppContainer *container.Container

	// ConfigFile, LogLevel and LogFormat back the persistent flags
	ConfigFile string
	LogLevel   string
	LogFormat  string

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "finassist",
		Short: "A CLI tool to answer financial questions and categorize transactions.",
		Long: `finassist answers free-text questions about a financial snapshot
(monthly spending, credit cards, top categories, cash on hand, subscriptions)
and assigns spending categories to transactions, asking an OpenAI-compatible
model first and falling back to keyword rules.`,
		SilenceUsage: true,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Welcome to finassist!")
			Log.Info("Use --help to see available commands")
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return Initialize(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if AppContainer != nil {
				_ = AppContainer.Close()
			}
		},
	}
)

// Init registers the persistent flags
func Init() {
	Cmd.PersistentFlags().StringVar(&ConfigFile, "config", "", "Config file (default searches $HOME/.finassist, .finassist and .)")
	Cmd.PersistentFlags().StringVar(&LogLevel, "log-level", "", "Log level (trace, debug, info, warn, error)")
	Cmd.PersistentFlags().StringVar(&LogFormat, "log-format", "", "Log format (text, json)")
}

// Initialize loads .env and configuration, applies flag overrides and wires
// the container.
func Initialize(cmd *cobra.Command) error {
	if _, err := config.LoadEnv(); err != nil {
		return fmt.Errorf("failed to load .env: %w", err)
	}

	cfg, err := config.InitializeConfig(ConfigFile)
	if err != nil {
		return err
	}
	applyFlagOverrides(cmd, cfg)

	Log = logging.NewLogrusAdapter(cfg.Log.Level, cfg.Log.Format)

	c, err := container.NewContainerWithLogger(cfg, Log)
	if err != nil {
		return err
	}
	AppContainer = c
	return nil
}

func applyFlagOverrides(cmd *cobra.Command, cfg *config.Config) {
	if flagChanged(cmd, "log-level") && LogLevel != "" {
		cfg.Log.Level = LogLevel
	}
	if flagChanged(cmd, "log-format") && LogFormat != "" {
		cfg.Log.Format = LogFormat
	}
}

func flagChanged(cmd *cobra.Command, name string) bool {
	if cmd == nil {
		return false
	}
	f := cmd.Flags().Lookup(name)
	return f != nil && f.Changed
}
