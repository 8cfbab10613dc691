package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/learnhub-dev/learnhub/internal/apiclient"
	"github.com/learnhub-dev/learnhub/internal/tokenstore"
)

// NewAdminCmd creates the admin command group
func NewAdminCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Manage catalog content (administrators only)",
	}

	cmd.AddCommand(newLoginCmd("login", "Sign in as an administrator", tokenstore.RoleAdmin))

	cmd.AddCommand(&cobra.Command{
		Use:   "ls <courses|workshops|hackathons>",
		Short: "List records of a collection",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAdminList(cmd.Context(), apiclient.CatalogKind(args[0]), WithOutput(cmd.OutOrStdout()), WithErrOutput(cmd.ErrOrStderr()))
		},
	})

	var file string
	create := &cobra.Command{
		Use:   "create <courses|workshops|hackathons>",
		Short: "Create a record from a JSON file (- for stdin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var in io.Reader = cmd.InOrStdin()
			if file != "-" {
				f, err := os.Open(file)
				if err != nil {
					return fmt.Errorf("failed to open %s: %w", file, err)
				}
				defer f.Close()
				in = f
			}
			return runAdminCreate(cmd.Context(), apiclient.CatalogKind(args[0]), in, WithOutput(cmd.OutOrStdout()), WithErrOutput(cmd.ErrOrStderr()))
		},
	}
	create.Flags().StringVarP(&file, "file", "f", "-", "JSON document to create")
	cmd.AddCommand(create)

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <courses|workshops|hackathons> <id>",
		Short: "Delete a record",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAdminDelete(cmd.Context(), apiclient.CatalogKind(args[0]), args[1], WithOutput(cmd.OutOrStdout()), WithErrOutput(cmd.ErrOrStderr()))
		},
	})

	return cmd
}

func adminEnv(kind apiclient.CatalogKind, opts []Option) (*runEnv, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("unknown collection %q, must be one of: courses, workshops, hackathons", kind)
	}
	env, err := newRunEnv(opts...)
	if err != nil {
		return nil, err
	}
	if err := env.requireSession(tokenstore.RoleAdmin); err != nil {
		return nil, err
	}
	return env, nil
}

// adminRecord is the subset of fields shown in listings
type adminRecord struct {
	ID    string `json:"_id"`
	Title string `json:"title"`
}

func runAdminList(ctx context.Context, kind apiclient.CatalogKind, opts ...Option) error {
	if ctx == nil {
		ctx = context.Background()
	}
	env, err := adminEnv(kind, opts)
	if err != nil {
		return err
	}

	docs, err := env.api.AdminList(ctx, kind)
	if err != nil {
		return fmt.Errorf("failed to list %s: %w", kind, err)
	}
	if len(docs) == 0 {
		fmt.Fprintf(env.out, "No %s found.\n", kind)
		return nil
	}

	w := tabwriter.NewWriter(env.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE")
	for _, doc := range docs {
		var rec adminRecord
		if err := json.Unmarshal(doc, &rec); err != nil {
			continue
		}
		fmt.Fprintf(w, "%s\t%s\n", rec.ID, rec.Title)
	}
	return w.Flush()
}

func runAdminCreate(ctx context.Context, kind apiclient.CatalogKind, in io.Reader, opts ...Option) error {
	if ctx == nil {
		ctx = context.Background()
	}
	env, err := adminEnv(kind, opts)
	if err != nil {
		return err
	}

	data, err := io.ReadAll(in)
	if err != nil {
		return fmt.Errorf("failed to read document: %w", err)
	}
	var obj map[string]any
	if err := json.Unmarshal(data, &obj); err != nil || obj == nil {
		return fmt.Errorf("document must be a JSON object")
	}

	created, err := env.api.AdminCreate(ctx, kind, apiclient.Document(data))
	if err != nil {
		return fmt.Errorf("failed to create record: %w", err)
	}

	var rec adminRecord
	_ = json.Unmarshal(created, &rec)
	fmt.Fprintf(env.out, "✓ Created %s %s\n", kind, rec.ID)
	return nil
}

func runAdminDelete(ctx context.Context, kind apiclient.CatalogKind, id string, opts ...Option) error {
	if ctx == nil {
		ctx = context.Background()
	}
	env, err := adminEnv(kind, opts)
	if err != nil {
		return err
	}

	if err := env.api.AdminDelete(ctx, kind, id); err != nil {
		return fmt.Errorf("failed to delete record: %w", err)
	}
	fmt.Fprintf(env.out, "✓ Deleted %s %s\n", kind, id)
	return nil
}
