package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dsilva/studium/internal/llm"
	"github.com/dsilva/studium/internal/solutions"
)

var solveCmd = &cobra.Command{
	Use:   "solve [problem]",
	Short: "Get a step-by-step solution for a problem",
	Args:  cobra.MinimumNArgs(1),
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

		solver := solutions.New(provider, lib, solutions.DefaultConfig())
		problem := strings.Join(args, " ")

		content, err := solver.Solve(cmd.Context(), problem)
		if err != nil {
			return err
		}
		fmt.Println(content)

		save, _ := cmd.Flags().GetBool("save")
		if save {
			if _, err := solver.Save(cmd.Context(), problem, content); err != nil {
				return fmt.Errorf("save solution: %w", err)
			}
			fmt.Println("\nSaved to your library.")
		}
		return nil
	},
}

func init() {
	solveCmd.Flags().Bool("save", false, "Save the solution to your library")
}
