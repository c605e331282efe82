package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dsilva/studium/internal/exercise"
	"github.com/dsilva/studium/internal/flashcards"
	"github.com/dsilva/studium/internal/llm"
)

var flashcardsCmd = &cobra.Command{
	Use:   "flashcards",
	Short: "Manage flashcard sets from the command line",
}

var flashcardsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved flashcard sets",
	RunE: func(cmd *cobra.Command, args []string) error {
		lib, _, cleanup, err := openLibrary(cmd)
		if err != nil {
			return err
		}
		defer cleanup()

		sets := lib.FlashcardSets()
		if len(sets) == 0 {
			fmt.Println("No flashcard sets saved.")
			return nil
		}
		for _, set := range sets {
			fmt.Printf("%-36s  %-24s  %-20s  %d cards  %s\n",
				set.ID, set.Name, set.Topic, len(set.Cards), set.Date)
		}
		return nil
	},
}

var flashcardsNewCmd = &cobra.Command{
	Use:   "new [topic]",
	Short: "Generate and save a new flashcard set",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		lib, logger, cleanup, err := openLibrary(cmd)
		if err != nil {
			return err
		}
		defer cleanup()

		provider, err := llm.NewProviderFromEnv(cmd.Context(), logger)
		if err != nil {
			return fmt.Errorf("LLM provider not configured: %w", err)
		}

		name, _ := cmd.Flags().GetString("name")
		count, _ := cmd.Flags().GetInt("count")
		if count < 1 || count > 50 {
			return fmt.Errorf("count must be between 1 and 50, got %d", count)
		}

		gen := exercise.New(provider, exercise.DefaultConfig())
		service := flashcards.New(gen, lib)

		set, err := service.Create(cmd.Context(), name, args[0], count)
		if err != nil {
			return err
		}

		fmt.Printf("Created %q with %d cards.\n", set.Name, len(set.Cards))
		for _, card := range set.Cards {
			fmt.Printf("  %-24s %s\n", card.Term, card.Definition)
		}
		return nil
	},
}

func init() {
	flashcardsNewCmd.Flags().String("name", "", "Name for the set (defaults to the topic)")
	flashcardsNewCmd.Flags().Int("count", 10, "Number of cards to generate")
	flashcardsCmd.AddCommand(flashcardsListCmd)
	flashcardsCmd.AddCommand(flashcardsNewCmd)
}
