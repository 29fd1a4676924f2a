package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"reservationportal/internal/repository/migrations"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, err := newApp(ctx, false)
			if err != nil {
				return err
			}
			defer a.close()
			if a.db == nil {
				return errNeedsPostgres
			}

			applied, err := migrations.Up(ctx, a.db, a.logger)
			if err != nil {
				return err
			}
			if len(applied) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "schema is up to date")
				return nil
			}
			for _, name := range applied {
				fmt.Fprintf(cmd.OutOrStdout(), "applied %s\n", name)
			}
			return nil
		},
	}
}
