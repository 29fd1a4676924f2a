package cmd

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"reservationportal/internal/domain"
)

func newMembersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "members",
		Short: "Manage the member allow-list",
	}
	cmd.AddCommand(newMembersAddCmd())
	cmd.AddCommand(newMembersSetAdminCmd())
	cmd.AddCommand(newMembersListCmd())
	return cmd
}

func newMembersAddCmd() *cobra.Command {
	var email, firstName, lastName string
	var admin bool

	c := &cobra.Command{
		Use:   "add",
		Short: "Allow-list a member",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, err := newApp(ctx, true)
			if err != nil {
				return err
			}
			defer a.close()

			u, err := a.members.AddMember(ctx, email, firstName, lastName, admin)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "added %s (%s)\n", u.Email, u.ID)
			return nil
		},
	}

	c.Flags().StringVar(&email, "email", "", "member email")
	c.Flags().StringVar(&firstName, "first-name", "", "first name")
	c.Flags().StringVar(&lastName, "last-name", "", "last name")
	c.Flags().BoolVar(&admin, "admin", false, "grant admin")
	_ = c.MarkFlagRequired("email")
	return c
}

func newMembersSetAdminCmd() *cobra.Command {
	var email string
	var admin bool

	c := &cobra.Command{
		Use:   "set-admin",
		Short: "Grant or revoke admin for a member",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, err := newApp(ctx, true)
			if err != nil {
				return err
			}
			defer a.close()

			u, err := a.members.SetAdmin(ctx, email, admin)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s admin=%t\n", u.Email, u.IsAdmin)
			return nil
		},
	}

	c.Flags().StringVar(&email, "email", "", "member email")
	c.Flags().BoolVar(&admin, "admin", true, "admin flag to set")
	_ = c.MarkFlagRequired("email")
	return c
}

func newMembersListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List allow-listed members",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, err := newApp(ctx, true)
			if err != nil {
				return err
			}
			defer a.close()

			users, err := a.members.ListMembers(ctx)
			if err != nil {
				return err
			}
			printMembers(cmd, users)
			return nil
		},
	}
}

func printMembers(cmd *cobra.Command, users []*domain.User) {
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "EMAIL\tNAME\tADMIN\tID")
	for _, u := range users {
		fmt.Fprintf(tw, "%s\t%s\t%t\t%s\n", u.Email, u.FullName(), u.IsAdmin, u.ID)
	}
	_ = tw.Flush()
}
