package cli

import (
	"fmt"

	"github.com/SscSPs/cashflow_backend/internal/core/domain"
	"github.com/spf13/cobra"
)

// cliActor is recorded as last_updated_by for changes made from the command line.
const cliActor = "cashflowctl"

func newUsersCmd(a *app) *cobra.Command {
	usersCmd := &cobra.Command{
		Use:   "users",
		Short: "Manage users",
	}

	setRoleCmd := &cobra.Command{
		Use:   "set-role <username> <user|manager|admin>",
		Short: "Change a user's role",
		Long:  "Changes a user's role. Use it to promote the first admin after registering through the API.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			username, role := args[0], domain.Role(args[1])
			if !role.Valid() {
				return fmt.Errorf("invalid role %q, expected user, manager or admin", args[1])
			}

			ctx := cmd.Context()
			svc, err := a.services(ctx)
			if err != nil {
				return err
			}
			user, err := svc.User.SetRole(ctx, username, role, cliActor)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s is now %s\n", user.Username, user.Role)
			return nil
		},
	}

	usersCmd.AddCommand(setRoleCmd)
	return usersCmd
}
