package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/COS301-SE-2025/Fire-Fighter-sub001/internal/config"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "firefighter",
	Short: "Break-glass emergency access tickets with a natural-language interface",
	Long: `Firefighter manages time-boxed emergency access tickets. Users
create, query, and close break-glass tickets through plain-English
queries served over HTTP, WebSocket chat, or MCP for AI agents.`,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", config.DefaultPath, "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// loadConfig loads and validates the config, providing a user-friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `firefighter init` to create a config file", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if verbose {
		cfg.VerboseResponses = true
	}
	return cfg, nil
}
