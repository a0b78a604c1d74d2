package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/authslice/authd/internal/core/domain"
)

func newUsersCommand() *cobra.Command {
	usersCmd := &cobra.Command{
		Use:   "users",
		Short: "Manage user accounts",
	}
	usersCmd.AddCommand(newSetRolesCommand())
	return usersCmd
}

func newSetRolesCommand() *cobra.Command {
	var (
		email string
		roles []string
	)

	cmd := &cobra.Command{
		Use:   "set-roles",
		Short: "Replace the roles of an existing user",
		Long: `Replaces the role set of the user registered under --email. Tokens
issued before the change keep their old roles until they expire.

	authd users set-roles --email alice@example.com --roles USER,ADMIN`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := bootstrap(cmd)
			if err != nil {
				return err
			}

			backend, svc, err := openStore(cmd.Context(), cfg, log)
			if err != nil {
				return err
			}
			defer backend.Close(context.Background())

			user, err := svc.AssignRoles(cmd.Context(), email, roles)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %v\n", user.Email, domain.RoleNames(user.Roles))
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "email of the user to update")
	cmd.Flags().StringSliceVar(&roles, "roles", nil, "new role set, comma separated")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("roles")
	return cmd
}
