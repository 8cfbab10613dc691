package cli

import (
	"fmt"
	"os"

	"github.com/learnhub-dev/learnhub/internal/cli/commands"
	"github.com/spf13/cobra"
)

var version = "dev" // Will be set during build

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "learnhub",
		Short: "learnhub - courses, workshops and hackathons from your terminal",
		Long: `learnhub CLI - browse the catalog, manage your enrollments and,
for administrators, manage catalog content.

Sessions are stored in the OS keychain (or ~/.config/learnhub/session.json
when token_store is "file").`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Add version command
	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "learnhub version %s\n", version)
		},
	})

	// Add all subcommands
	rootCmd.AddCommand(commands.NewLoginCmd())
	rootCmd.AddCommand(commands.NewSignupCmd())
	rootCmd.AddCommand(commands.NewLogoutCmd())
	rootCmd.AddCommand(commands.NewWhoamiCmd())
	rootCmd.AddCommand(commands.NewCoursesCmd())
	rootCmd.AddCommand(commands.NewRegistrationsCmd())
	rootCmd.AddCommand(commands.NewAdminCmd())
	rootCmd.AddCommand(commands.NewConfigCmd())

	return rootCmd
}

// Execute runs the root command
func Execute() error {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}
