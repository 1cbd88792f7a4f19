package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-roids/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective game config",
	Long: `Resolve the game config the way play does (custom path, user config,
./configs, built-in defaults), apply the difficulty preset and print the
result as YAML. The output is a valid starting point for --config.

Examples:
  roids config > my-roids.yaml
  roids config --difficulty hard`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func runConfig(cmd *cobra.Command, _ []string) error {
	cfg, err := config.LoadRoids(flagConfig)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if preset := config.ParsePreset(flagDifficulty); preset != "" {
		config.ApplyRoidsPreset(&cfg, preset)
	}

	enc := yaml.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent(2)
	defer enc.Close()
	return enc.Encode(cfg)
}
