package commands

import (
	"context"
	"fmt"
	"os"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/learnhub-dev/learnhub/internal/apiclient"
	"github.com/learnhub-dev/learnhub/internal/tokenstore"
)

// NewLoginCmd creates the login command
func NewLoginCmd() *cobra.Command {
	return newLoginCmd("login", "Sign in to learnhub", tokenstore.RoleUser)
}

func newLoginCmd(use, short string, role tokenstore.Role) *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLogin(cmd.Context(), role, email, password, WithOutput(cmd.OutOrStdout()), WithErrOutput(cmd.ErrOrStderr()))
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Email address (or set LEARNHUB_EMAIL)")
	cmd.Flags().StringVar(&password, "password", "", "Password (or set LEARNHUB_PASSWORD, will prompt if not provided)")

	return cmd
}

func runLogin(ctx context.Context, role tokenstore.Role, email, password string, opts ...Option) error {
	if ctx == nil {
		ctx = context.Background()
	}

	// Check for environment variables (useful for CI/CD)
	if email == "" {
		email = os.Getenv("LEARNHUB_EMAIL")
	}
	if password == "" {
		password = os.Getenv("LEARNHUB_PASSWORD")
	}

	if email == "" {
		return fmt.Errorf("email is required (use --email flag or LEARNHUB_EMAIL env var)")
	}

	env, err := newRunEnv(opts...)
	if err != nil {
		return err
	}

	if password == "" {
		password, err = promptPassword(env)
		if err != nil {
			return err
		}
	}

	req := apiclient.LoginRequest{Email: email, Password: password}

	// Bad credentials come back as 401; that is not an expired session
	api := env.api.WithSession(env.tokens, apiclient.NavigatorFunc(func(string) {}))

	var resp *apiclient.AuthResponse
	if role == tokenstore.RoleAdmin {
		resp, err = api.AdminLogin(ctx, req)
	} else {
		resp, err = api.Login(ctx, req)
	}
	if err != nil {
		if apiclient.IsUnauthorized(err) {
			return fmt.Errorf("login failed: invalid email or password")
		}
		return fmt.Errorf("login failed: %w", err)
	}

	if err := env.tokens.Set(role, resp.Token); err != nil {
		return fmt.Errorf("failed to save authentication token: %w", err)
	}

	fmt.Fprintln(env.out, "✓ Login successful!")
	if resp.User != nil {
		if role == tokenstore.RoleUser {
			_ = env.tokens.SetDisplayName(resp.User.Name)
		}
		fmt.Fprintf(env.out, "  User: %s (%s)\n", resp.User.Name, resp.User.Email)
	}
	if role == tokenstore.RoleAdmin {
		fmt.Fprintln(env.out, "  Role: Admin")
	}
	return nil
}

func promptPassword(env *runEnv) (string, error) {
	// Check if stdin is a terminal (not piped)
	if !term.IsTerminal(int(syscall.Stdin)) {
		return "", fmt.Errorf("password is required in non-interactive mode (use --password flag or LEARNHUB_PASSWORD env var)")
	}
	fmt.Fprint(env.errOut, "Password: ")
	bytePassword, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Fprintln(env.errOut) // New line after password input
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return string(bytePassword), nil
}
