package main

import (
	"errors"
	"fmt"

	"github.com/rpggio/recipebox/internal/config"
	"github.com/rpggio/recipebox/internal/repository"
	"github.com/rpggio/recipebox/internal/sqlite"
	"github.com/spf13/cobra"
)

func newIssueTokenCommand(opts *rootOptions) *cobra.Command {
	var description, uid string

	cmd := &cobra.Command{
		Use:   "issue-token",
		Short: "Provision a sign-in token",
		Long: `Provision a sign-in token in the configured store.

The token is printed once. Set it as RECIPEBOX_AUTH_TOKEN for the server's own
sign-in, or send it as a bearer token when server.require_token is enabled.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(opts.ConfigPath)
			if err != nil {
				return fmt.Errorf("config error: %w", err)
			}
			if cfg.Store.Path == "" {
				return errors.New("store path is not configured")
			}

			db, err := openStore(cfg.Store.Path)
			if err != nil {
				return err
			}
			defer db.Close()

			token, tokenUID, err := sqlite.NewIdentities(db).IssueToken(cmd.Context(), uid, description)
			if errors.Is(err, repository.ErrNotFound) {
				return fmt.Errorf("identity %q not found", uid)
			}
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "uid:   %s\ntoken: %s\n", tokenUID, token)
			return nil
		},
	}
	cmd.Flags().StringVar(&description, "description", "", "note stored with the token")
	cmd.Flags().StringVar(&uid, "uid", "", "existing identity to attach the token to (default: new identity)")
	return cmd
}
