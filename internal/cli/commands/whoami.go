package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/learnhub-dev/learnhub/internal/session"
	"github.com/learnhub-dev/learnhub/internal/tokenstore"
)

// NewWhoamiCmd creates the whoami command
func NewWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWhoami(cmd.Context(), WithOutput(cmd.OutOrStdout()), WithErrOutput(cmd.ErrOrStderr()))
		},
	}
}

func runWhoami(ctx context.Context, opts ...Option) error {
	if ctx == nil {
		ctx = context.Background()
	}
	env, err := newRunEnv(opts...)
	if err != nil {
		return err
	}

	if err := env.requireSession(tokenstore.RoleUser); err != nil {
		return err
	}

	users := session.NewUserSession(env.tokens, env.api, env.logger)
	if user, ok := users.CurrentUser(ctx); ok {
		fmt.Fprintf(env.out, "%s (%s)\n", user.Name, user.Email)
	} else if _, stillLoggedIn := env.tokens.Get(tokenstore.RoleUser); stillLoggedIn {
		// Profile unavailable: show what we have
		fmt.Fprintf(env.out, "%s (profile unavailable)\n", users.CachedDisplayName())
	} else {
		return errNotLoggedIn
	}

	if _, ok := env.tokens.Get(tokenstore.RoleAdmin); ok {
		fmt.Fprintln(env.out, "Admin session: active")
	}
	return nil
}
