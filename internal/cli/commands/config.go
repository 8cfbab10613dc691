package commands

import (
	"fmt"
	"net/url"

	"github.com/spf13/cobra"

	"github.com/learnhub-dev/learnhub/internal/cli/userconfig"
)

// NewConfigCmd creates the config command group
func NewConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or change CLI settings",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := userconfig.Load()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "api_url: %s\ntoken_store: %s\n", cfg.APIURL, cfg.TokenStore)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "set-api-url <url>",
		Short: "Set the backend URL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := userconfig.GetConfigPath()
			if err != nil {
				return err
			}
			return runSetAPIURL(path, args[0])
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "set-token-store <keyring|file>",
		Short: "Choose where sessions are stored",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := userconfig.GetConfigPath()
			if err != nil {
				return err
			}
			return runSetTokenStore(path, args[0])
		},
	})

	return cmd
}

// runSetAPIURL edits the stored file only, so env overrides never get persisted
func runSetAPIURL(configPath, raw string) error {
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid URL %q", raw)
	}

	cfg, err := userconfig.ReadFrom(configPath)
	if err != nil {
		return err
	}
	cfg.APIURL = raw
	return userconfig.SaveTo(configPath, cfg)
}

func runSetTokenStore(configPath, store string) error {
	if store != userconfig.TokenStoreKeyring && store != userconfig.TokenStoreFile {
		return fmt.Errorf("invalid token store %q, must be one of: keyring, file", store)
	}

	cfg, err := userconfig.ReadFrom(configPath)
	if err != nil {
		return err
	}
	cfg.TokenStore = store
	return userconfig.SaveTo(configPath, cfg)
}
