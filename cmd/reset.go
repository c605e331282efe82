package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Erase the active profile's library",
	Long:  "Deletes all history, solutions, flashcards, exercises and reports for the active profile.",
	RunE: func(cmd *cobra.Command, args []string) error {
		lib, _, cleanup, err := openLibrary(cmd)
		if err != nil {
			return err
		}
		defer cleanup()

		user := lib.UserID()
		if user == "" {
			return fmt.Errorf("no profile selected; pass --user or set STUDIUM_USER")
		}

		force, _ := cmd.Flags().GetBool("force")
		if !force {
			fmt.Printf("This erases everything saved for %q. Type the profile name to confirm: ", user)
			reader := bufio.NewReader(os.Stdin)
			line, _ := reader.ReadString('\n')
			if strings.TrimSpace(line) != user {
				fmt.Println("Aborted.")
				return nil
			}
		}

		if err := lib.Reset(cmd.Context()); err != nil {
			return err
		}
		fmt.Printf("Library for %q erased.\n", user)
		return nil
	},
}

func init() {
	resetCmd.Flags().Bool("force", false, "Skip the confirmation prompt")
}
