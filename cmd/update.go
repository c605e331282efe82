package cmd

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/dsilva/studium/internal/selfupdate"
)

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update studium to the latest release",
	RunE: func(cmd *cobra.Command, args []string) error {
		checker := selfupdate.NewChecker(selfupdate.WithTimeout(2 * time.Minute))

		checkOnly, _ := cmd.Flags().GetBool("check")
		if checkOnly {
			result, err := checker.Check(cmd.Context(), &selfupdate.CheckInput{Version: version})
			if err != nil {
				return err
			}
			if result.UpdateAvailable {
				fmt.Printf("Update available: %s -> %s\n%s\n",
					result.CurrentVersion, result.LatestVersion, result.ReleaseURL)
			} else {
				fmt.Printf("studium %s is up to date.\n", version)
			}
			return nil
		}

		target, _ := cmd.Flags().GetString("version")
		err := checker.Update(cmd.Context(), &selfupdate.UpdateInput{
			CurrentVersion: version,
			TargetVersion:  target,
		}, func(p selfupdate.UpdateProgress) {
			fmt.Println(p.Message)
		})

		switch {
		case errors.Is(err, selfupdate.ErrDevBuild):
			fmt.Println("This is a development build; install a released binary to use update.")
			return nil
		case errors.Is(err, selfupdate.ErrAlreadyLatest):
			fmt.Printf("studium %s is already the latest version.\n", version)
			return nil
		case errors.Is(err, os.ErrPermission):
			return fmt.Errorf("no permission to replace the binary; re-run with elevated privileges: %w", err)
		case err != nil:
			return err
		}
		return nil
	},
}

func init() {
	updateCmd.Flags().Bool("check", false, "Only check whether an update is available")
	updateCmd.Flags().String("version", "", "Update to a specific release tag instead of the latest")
}
