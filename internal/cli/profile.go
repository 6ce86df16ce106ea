package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/rcliao/grade-analyzer/internal/profile"
)

func init() {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Build a user profile from name, birth year and hobbies",
		Args:  cobra.NoArgs,
		RunE:  runProfile,
	}

	cmd.Flags().Int("year", 0, "Current year (default: profile.current_year or the clock)")

	RootCmd.AddCommand(cmd)
}

func runProfile(cmd *cobra.Command, args []string) error {
	year, _ := cmd.Flags().GetInt("year")
	if year == 0 {
		year = cfg.Profile.CurrentYear
	}
	if year == 0 {
		year = time.Now().Year()
	}

	in, closeInput := openInput(cmd)
	defer closeInput()

	p, err := profile.Collect(in, cmd.OutOrStdout(), year)
	if err != nil {
		if endOfInput(err) {
			fmt.Fprintln(cmd.OutOrStdout())
			return nil
		}
		return fmt.Errorf("profile: %w", err)
	}
	return profile.Write(cmd.OutOrStdout(), p, cfg.ReportFormat())
}
