package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/learnhub-dev/learnhub/internal/apiclient"
	"github.com/learnhub-dev/learnhub/internal/tokenstore"
)

// NewSignupCmd creates the signup command
func NewSignupCmd() *cobra.Command {
	var req apiclient.SignupRequest

	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create a learnhub account",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSignup(cmd.Context(), req, WithOutput(cmd.OutOrStdout()), WithErrOutput(cmd.ErrOrStderr()))
		},
	}

	cmd.Flags().StringVar(&req.Name, "name", "", "Full name")
	cmd.Flags().StringVar(&req.Email, "email", "", "Email address")
	cmd.Flags().StringVar(&req.Phone, "phone", "", "Phone number in E.164 format (optional)")
	cmd.Flags().StringVar(&req.Password, "password", "", "Password (or set LEARNHUB_PASSWORD, will prompt if not provided)")

	return cmd
}

func runSignup(ctx context.Context, req apiclient.SignupRequest, opts ...Option) error {
	if ctx == nil {
		ctx = context.Background()
	}

	env, err := newRunEnv(opts...)
	if err != nil {
		return err
	}

	if req.Password == "" {
		req.Password = os.Getenv("LEARNHUB_PASSWORD")
	}
	if req.Password == "" {
		if req.Password, err = promptPassword(env); err != nil {
			return err
		}
	}

	resp, err := env.api.Signup(ctx, req)
	if err != nil {
		return fmt.Errorf("signup failed: %w", err)
	}

	if err := env.tokens.Set(tokenstore.RoleUser, resp.Token); err != nil {
		return fmt.Errorf("failed to save authentication token: %w", err)
	}
	_ = env.tokens.SetDisplayName(req.Name)

	fmt.Fprintf(env.out, "✓ Welcome to learnhub, %s!\n", req.Name)
	return nil
}
