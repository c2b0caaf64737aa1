// mosnake is a terminal snake game steered by webcam motion.
//
// Usage:
//
//	mosnake play          - Play using the webcam (or --no-camera demo mode)
//	mosnake scores        - Show the top 10 high scores
//	mosnake calibrate     - Print the live motion vector to tune thresholds
//
// Global flags:
//
//	--fps <rate>    - Set tick rate (default: 60)
//	--seed <value>  - Set RNG seed for reproducible food placement
//	--db <path>     - Set database path (default: ~/.mosnake/scores.db)
//	--config <path> - Path to a custom config YAML
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfigPath string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "mosnake",
	Short: "Motion Snake - steer a terminal snake with your webcam",
	Long: `Motion Snake is a terminal snake game with no keyboard controls:
the snake follows your body. Lean or wave left, right, up or down in
front of the webcam to steer.

Available commands:
  play       - Start a game
  scores     - View high scores
  calibrate  - Live motion vector readout for tuning

Examples:
  mosnake play
  mosnake play --no-camera
  mosnake play --commentary ws://localhost:8765/feed
  mosnake scores
  mosnake calibrate --camera 1`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.mosnake/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfigPath, "config", "", "Path to custom config YAML")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(calibrateCmd)
}
