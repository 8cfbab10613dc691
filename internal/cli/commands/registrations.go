package commands

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/learnhub-dev/learnhub/internal/tokenstore"
)

// NewRegistrationsCmd creates the registrations command
func NewRegistrationsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "registrations",
		Short: "List your enrollments and event registrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRegistrations(cmd.Context(), WithOutput(cmd.OutOrStdout()), WithErrOutput(cmd.ErrOrStderr()))
		},
	}
}

func runRegistrations(ctx context.Context, opts ...Option) error {
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

	regs, err := env.api.MyRegistrations(ctx)
	if err != nil {
		return fmt.Errorf("failed to list registrations: %w", err)
	}

	if len(regs) == 0 {
		fmt.Fprintln(env.out, "No registrations yet.")
		fmt.Fprintln(env.out, "\nBrowse courses with: learnhub courses ls")
		return nil
	}

	w := tabwriter.NewWriter(env.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TYPE\tTITLE\tSTATUS\tDATE")
	for _, reg := range regs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", reg.Kind, reg.Title, reg.Status, reg.CreatedAt)
	}
	return w.Flush()
}
