package cmd

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/dsilva/studium/internal/library"
)

var rootCmd = &cobra.Command{
	Use:   "studium",
	Short: "AI-assisted study sessions in your terminal",
	Long:  "Studium — timed quizzes, matching games and flashcards on any topic, judged and reported by an AI tutor.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	// A local .env is a convenience for API keys; absence is fine.
	_ = godotenv.Load()
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides STUDIUM_DB)")
	rootCmd.PersistentFlags().String("user", "", "Profile name (overrides STUDIUM_USER)")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(solveCmd)
	rootCmd.AddCommand(flashcardsCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(updateCmd)
}

// resolveDBPath returns the database path using --db flag (highest
// priority), then STUDIUM_DB, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, nil
	}
	return library.DefaultDBPath()
}
