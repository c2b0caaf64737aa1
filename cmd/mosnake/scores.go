package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/motion-snake/internal/leaderboard"
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the high score table",
	Long: `Display the top 10 high scores.

Examples:
  mosnake scores
  mosnake scores --db ./scores.db`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

func runScores(cmd *cobra.Command, args []string) {
	store, err := leaderboard.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	board, err := store.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("High Scores - Motion Snake")
	fmt.Println()

	entries := board.Entries()
	if len(entries) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Println("Play 'mosnake play' to set the first high score!")
		return
	}

	// Print header
	fmt.Printf("  %-4s  %-12s  %-10s  %s\n", "Rank", "Name", "Score", "Date")
	fmt.Printf("  %-4s  %-12s  %-10s  %s\n", "----", "----", "-----", "----")

	// Print scores
	for i, entry := range entries {
		dateStr := entry.When.Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-12s  %-10d  %s\n", i+1, entry.Name, entry.Score, dateStr)
	}

	fmt.Println()
	fmt.Printf("Best: %d\n", board.Best())
}
