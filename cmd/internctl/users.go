package main

import (
	"fmt"
	"strings"

	"github.com/cuongbtq/interniq-be/internal/api/domain"
	"github.com/spf13/cobra"
)

func newPromoteCmd(opts *rootOptions) *cobra.Command {
	var demote bool

	cmd := &cobra.Command{
		Use:   "promote EMAIL",
		Short: "Grant a registered user the admin role",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(opts)
			if err != nil {
				return err
			}
			defer e.Close()

			user, err := e.store.GetUserByEmail(cmd.Context(), strings.ToLower(strings.TrimSpace(args[0])))
			if err != nil {
				return err
			}

			role := domain.RoleAdmin
			if demote {
				role = domain.RoleStudent
			}

			if err := e.store.SetUserRole(cmd.Context(), user.ID, role); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s is now %s\n", user.Email, role)
			return nil
		},
	}

	cmd.Flags().BoolVar(&demote, "demote", false, "revoke the admin role instead")
	return cmd
}
