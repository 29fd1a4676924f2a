package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"reservationportal/internal/adapters/export"
)

func newExportCmd() *cobra.Command {
	var out string

	c := &cobra.Command{
		Use:   "export",
		Short: "Write all reservations as CSV",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, err := newApp(ctx, true)
			if err != nil {
				return err
			}
			defer a.close()

			if out == "-" {
				return a.slotAdmin.ExportReservations(ctx, cmd.OutOrStdout())
			}
			if out == "" {
				out = export.FileName(time.Now())
			}
			f, err := os.Create(out)
			if err != nil {
				return err
			}
			if err := a.slotAdmin.ExportReservations(ctx, f); err != nil {
				_ = f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s\n", out)
			return nil
		},
	}

	c.Flags().StringVar(&out, "out", "", `output file ("-" for stdout, default reservations-YYYY-MM-DD.csv)`)
	return c
}
