package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/huddlehq/huddle/internal/config"
)

func newTokenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Manage API tokens",
	}
	cmd.AddCommand(newTokenNewCmd(), newTokenRevokeCmd())
	return cmd
}

func newTokenNewCmd() *cobra.Command {
	var userID, email, name string

	cmd := &cobra.Command{
		Use:   "new",
		Short: "Issue a new API token for a user",
		RunE: func(cmd *cobra.Command, args []string) error {
			if userID == "" && email == "" {
				return fmt.Errorf("either --user or --email is required")
			}
			cfg := config.LoadConfig()
			application, err := openApp(cfg)
			if err != nil {
				return err
			}
			defer application.Close()

			if userID == "" {
				user, err := application.Users.GetByEmail(cmd.Context(), email)
				if err != nil {
					return fmt.Errorf("looking up %s: %w", email, err)
				}
				userID = user.ID
			}

			token, err := application.Tokens.Issue(cmd.Context(), userID, name)
			if err != nil {
				return err
			}
			// Printed once; only the hash is stored.
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "user ID the token belongs to")
	cmd.Flags().StringVar(&email, "email", "", "look the user up by email instead")
	cmd.Flags().StringVar(&name, "name", "cli", "label for the token")
	return cmd
}

func newTokenRevokeCmd() *cobra.Command {
	var userID string

	cmd := &cobra.Command{
		Use:   "revoke",
		Short: "Revoke all API tokens of a user",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.LoadConfig()
			application, err := openApp(cfg)
			if err != nil {
				return err
			}
			defer application.Close()

			if err := application.Tokens.RevokeByUser(cmd.Context(), userID); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "tokens revoked")
			return nil
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "user ID whose tokens to revoke")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}
