// Package cmd holds the reservationportal command tree.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	Version   = "dev"
	CommitSHA = "none"
)

func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "reservationportal",
		Short:         "Interview slot reservations for allow-listed members",
		Version:       fmt.Sprintf("%s (%s)", Version, CommitSHA),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newServeCmd())
	root.AddCommand(newMigrateCmd())
	root.AddCommand(newMembersCmd())
	root.AddCommand(newSlotsCmd())
	root.AddCommand(newExportCmd())

	return root
}

func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
