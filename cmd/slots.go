package cmd

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"reservationportal/internal/domain"
)

func newSlotsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "slots",
		Short: "Manage interview slots",
	}
	cmd.AddCommand(newSlotsAddCmd())
	cmd.AddCommand(newSlotsListCmd())
	cmd.AddCommand(newSlotsDeleteCmd())
	return cmd
}

func newSlotsAddCmd() *cobra.Command {
	var date, start, end string
	var capacity int

	c := &cobra.Command{
		Use:   "add",
		Short: "Create a slot",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, err := newApp(ctx, true)
			if err != nil {
				return err
			}
			defer a.close()

			s, err := a.slotAdmin.CreateSlot(ctx, date, start, end, capacity)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created slot %s on %s %s-%s (capacity %d)\n", s.ID, s.Date, s.StartTime, s.EndTime, s.Capacity)
			return nil
		},
	}

	c.Flags().StringVar(&date, "date", "", "slot date (YYYY-MM-DD)")
	c.Flags().StringVar(&start, "start", "", "start time (HH:MM)")
	c.Flags().StringVar(&end, "end", "", "end time (HH:MM)")
	c.Flags().IntVar(&capacity, "capacity", domain.DefaultSlotCapacity, "seats on the slot")
	_ = c.MarkFlagRequired("date")
	_ = c.MarkFlagRequired("start")
	_ = c.MarkFlagRequired("end")
	return c
}

func newSlotsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List slots with occupancy",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, err := newApp(ctx, true)
			if err != nil {
				return err
			}
			defer a.close()

			slots, err := a.slotAdmin.ListSlots(ctx)
			if err != nil {
				return err
			}
			printSlots(cmd, slots)
			return nil
		},
	}
}

func newSlotsDeleteCmd() *cobra.Command {
	var id string

	c := &cobra.Command{
		Use:   "delete",
		Short: "Delete a slot and every reservation on it",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, err := newApp(ctx, true)
			if err != nil {
				return err
			}
			defer a.close()

			canceled, err := a.booking.DeleteSlot(ctx, id)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted slot %s, canceled %d reservation(s)\n", id, canceled)
			return nil
		},
	}

	c.Flags().StringVar(&id, "id", "", "slot ID")
	_ = c.MarkFlagRequired("id")
	return c
}

func printSlots(cmd *cobra.Command, slots []*domain.SlotAvailability) {
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "DATE\tTIME\tBOOKED\tCAPACITY\tID")
	for _, s := range slots {
		fmt.Fprintf(tw, "%s\t%s - %s\t%d\t%d\t%s\n", s.Slot.Date, s.Slot.StartTime, s.Slot.EndTime, s.Booked, s.Slot.Capacity, s.Slot.ID)
	}
	_ = tw.Flush()
}
