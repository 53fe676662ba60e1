package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/lane-rush/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Print the configuration a run would use, as YAML.

The output is a complete config file: save it to
~/.lanerush/configs/lanerush.yaml and edit it to tune the game.

Examples:
  lanerush config
  lanerush config --config ./my-lanerush.yaml`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func runConfig(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	data, err := config.Marshal(cfg)
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}
