// Package main implements the keepsake CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fyrsmithlabs/keepsake/internal/config"
)

var (
	// configPath overrides the default config file location
	configPath string

	// version information, set by ldflags
	version   = "dev"
	gitCommit = "unknown"
	buildDate = "unknown"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "keepsake",
	Short: "A guided, gated story for one person, in the terminal",
	Long: `keepsake walks one person through a series of gated steps and then an
eighteen-scene story. Some scenes are small games that must be finished
before the story moves on.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: false,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ~/.config/keepsake/config.yaml)")
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(walkCmd)
	rootCmd.AddCommand(scenesCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig loads the file named by --config, or the default path.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}
