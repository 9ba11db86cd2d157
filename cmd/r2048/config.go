package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/r2048/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the default configuration",
	Long: `Print the built-in configuration file.

Save it as ~/.r2048/config.yaml (or pass it with --config) and edit the
values to change the defaults.

Examples:
  r2048 config > ~/.r2048/config.yaml`,
	Args: cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		_, err := os.Stdout.Write(config.DefaultYAML())
		return err
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
}
