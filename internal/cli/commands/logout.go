package commands

import (
	"fmt"
	"syscall"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/learnhub-dev/learnhub/internal/tokenstore"
)

// NewLogoutCmd creates the logout command
func NewLogoutCmd() *cobra.Command {
	var admin, all bool
	var role string

	cmd := &cobra.Command{
		Use:   "logout",
		Short: "Sign out and remove the stored session",
		Long: `Sign out and remove the stored session.

Without flags the end-user session is removed. If both a user and an admin
session exist and the terminal is interactive, you will be asked which to remove.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			roles, err := logoutRoles(role, admin, all)
			if err != nil {
				return err
			}
			return runLogout(roles, WithOutput(cmd.OutOrStdout()), WithErrOutput(cmd.ErrOrStderr()))
		},
	}

	cmd.Flags().StringVar(&role, "role", "", "Session to remove (user or admin)")
	cmd.Flags().BoolVar(&admin, "admin", false, "Remove the admin session (same as --role admin)")
	cmd.Flags().BoolVar(&all, "all", false, "Remove every stored session")
	cmd.MarkFlagsMutuallyExclusive("role", "admin", "all")

	return cmd
}

// logoutRoles maps flags to roles. nil means nothing was chosen.
func logoutRoles(role string, admin, all bool) ([]tokenstore.Role, error) {
	switch {
	case all:
		return tokenstore.Roles, nil
	case admin:
		return []tokenstore.Role{tokenstore.RoleAdmin}, nil
	case role != "":
		r, err := tokenstore.ParseRole(role)
		if err != nil {
			return nil, err
		}
		return []tokenstore.Role{r}, nil
	}
	return nil, nil
}

// runLogout clears the given roles. A nil roles slice means "ask or default to user".
func runLogout(roles []tokenstore.Role, opts ...Option) error {
	env, err := newRunEnv(opts...)
	if err != nil {
		return err
	}

	if roles == nil {
		roles, err = chooseLogoutRoles(env)
		if err != nil {
			return err
		}
	}

	for _, role := range roles {
		if err := env.tokens.Clear(role); err != nil {
			return err
		}
		fmt.Fprintf(env.out, "✓ Logged out (%s)\n", role)
	}
	return nil
}

func chooseLogoutRoles(env *runEnv) ([]tokenstore.Role, error) {
	_, hasUser := env.tokens.Get(tokenstore.RoleUser)
	_, hasAdmin := env.tokens.Get(tokenstore.RoleAdmin)

	if !hasUser || !hasAdmin || !term.IsTerminal(int(syscall.Stdin)) {
		if hasAdmin && !hasUser {
			return []tokenstore.Role{tokenstore.RoleAdmin}, nil
		}
		return []tokenstore.Role{tokenstore.RoleUser}, nil
	}

	options := []string{"user", "admin", "both"}
	prompt := promptui.Select{
		Label: "Which session should be removed",
		Items: options,
	}
	index, _, err := prompt.Run()
	if err != nil {
		return nil, fmt.Errorf("logout cancelled: %w", err)
	}

	switch options[index] {
	case "admin":
		return []tokenstore.Role{tokenstore.RoleAdmin}, nil
	case "both":
		return tokenstore.Roles, nil
	default:
		return []tokenstore.Role{tokenstore.RoleUser}, nil
	}
}
