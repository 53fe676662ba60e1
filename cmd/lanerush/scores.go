package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/lane-rush/internal/platform/tui"
)

var (
	flagScoresTUI   bool
	flagScoresReset bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show best score and recent runs",
	Long: `Display the best score and the most recent runs, newest first.

Examples:
  lanerush scores
  lanerush scores --tui
  lanerush scores --reset`,
	Args: cobra.NoArgs,
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagScoresTUI, "tui", false, "Show the interactive scoreboard")
	scoresCmd.Flags().BoolVar(&flagScoresReset, "reset", false, "Clear best score and history")
}

func runScores(_ *cobra.Command, _ []string) error {
	logger, err := newLogger(os.Stderr, "lanerush")
	if err != nil {
		return err
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	book, closeBook := openBook(cfg, logger)
	defer closeBook()

	if flagScoresReset {
		if err := book.Reset(); err != nil {
			return fmt.Errorf("resetting scores: %w", err)
		}
		fmt.Println("Scores cleared.")
		return nil
	}

	if flagScoresTUI {
		rt := runtimeConfig()
		return tui.RunScoreboard(book, rt.ScreenW, rt.ScreenH)
	}

	history := book.History()

	fmt.Println("High Scores - Lane Rush")
	fmt.Println()

	if len(history) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Println("Play 'lanerush play' to set the first high score!")
		return nil
	}

	// Print header
	fmt.Printf("  %-4s  %s\n", "Run", "Score")
	fmt.Printf("  %-4s  %s\n", "---", "-----")

	for i, score := range history {
		label := fmt.Sprintf("-%d", i)
		if i == 0 {
			label = "last"
		}
		fmt.Printf("  %-4s  %d\n", label, score)
	}

	fmt.Println()
	fmt.Printf("Best: %d\n", book.Best())
	return nil
}
