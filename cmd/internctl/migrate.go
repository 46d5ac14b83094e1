package main

import (
	"fmt"

	"github.com/cuongbtq/interniq-be/internal/api/storage"
	"github.com/spf13/cobra"
)

func newMigrateCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending schema migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := openEnv(opts)
			if err != nil {
				return err
			}
			defer e.Close()

			if err := e.client.Migrate(cmd.Context(), storage.Migrations); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "schema is up to date (%d migrations)\n", len(storage.Migrations))
			return nil
		},
	}
}
