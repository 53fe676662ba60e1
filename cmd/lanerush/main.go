// lanerush is an endless lane-dodging racer for the terminal.
//
// Usage:
//
//	lanerush                 - Start menu (speed, control mode, scores)
//	lanerush play            - Start a run immediately
//	lanerush scores          - Show best score and recent runs
//	lanerush serve           - Start SSH server for remote play
//	lanerush config          - Print the effective configuration
//
// Global flags:
//
//	--seed <value>       - Set RNG seed for reproducible runs
//	--db <path>          - Set database path (default: ~/.lanerush/scores.db)
//	--config <path>      - Load a custom YAML configuration
//	--log-level <level>  - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagSeed     int64
	flagDBPath   string
	flagConfig   string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "lanerush",
	Short: "Lane Rush - dodge traffic in your terminal",
	Long: `Lane Rush is an endless racer: steer between five lanes, dodge
falling obstacles and pick up coins. Three crashes end the run.

Available commands:
  play     - Start a run directly
  scores   - View best score and recent runs
  serve    - Start SSH server for remote play
  config   - Print the effective configuration

Examples:
  lanerush
  lanerush play --speed fast
  lanerush play --mode tilt --tilt-listen :8088
  lanerush serve --ssh :2222
  lanerush scores`,
	RunE:          runMenu,
	SilenceErrors: true,
	SilenceUsage:  true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.lanerush/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.Flags().StringVar(&flagTiltAddr, "tilt-listen", "", "Serve the phone tilt page on this address (e.g. :8088)")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(configCmd)
}
