package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"pet-care-log/internal/domain/reminders"

	"github.com/spf13/cobra"
)

func newReminderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reminder",
		Short: "Manage reminders",
	}

	cmd.AddCommand(newReminderAddCmd())
	cmd.AddCommand(newReminderListCmd())
	cmd.AddCommand(newReminderDueCmd())
	cmd.AddCommand(newReminderRemoveCmd())

	return cmd
}

func newReminderAddCmd() *cobra.Command {
	var (
		flagName     string
		flagNotes    string
		flagAt       string
		flagEvery    string
		flagInterval int
		flagUntil    string
	)

	cmd := &cobra.Command{
		Use:   "add <pet-id>",
		Short: "Create a reminder (no --at means ready any time)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svcs, err := openServices()
			if err != nil {
				return err
			}

			var remindAt *time.Time
			if flagAt != "" {
				t, err := time.Parse(time.RFC3339, flagAt)
				if err != nil {
					return fmt.Errorf("invalid --at %q: use RFC3339", flagAt)
				}
				remindAt = &t
			}

			rec, err := parseRecurrenceFlags(flagEvery, flagInterval, flagUntil)
			if err != nil {
				return err
			}

			rem, err := svcs.reminders.Create(cmd.Context(), args[0], reminders.CreateInput{
				Name:       flagName,
				Notes:      flagNotes,
				RemindAt:   remindAt,
				Recurrence: rec,
			})
			if err != nil {
				return err
			}

			when := "any time"
			if rem.RemindAt != nil {
				when = rem.RemindAt.Format(time.RFC3339)
			}
			fmt.Printf("Reminder %q set for %s (%s)\n", rem.Name, when, rem.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&flagName, "name", "", "Reminder name (required)")
	cmd.Flags().StringVar(&flagNotes, "notes", "", "Free-form notes")
	cmd.Flags().StringVar(&flagAt, "at", "", "Remind time, RFC3339 (default: ready any time)")
	cmd.Flags().StringVar(&flagEvery, "every", "", "Recurrence frequency: daily, weekly, monthly, yearly")
	cmd.Flags().IntVar(&flagInterval, "interval", 1, "Recurrence interval (every N units)")
	cmd.Flags().StringVar(&flagUntil, "until", "", "Recurrence end date, YYYY-MM-DD")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newReminderListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list <pet-id>",
		Short: "List a pet's reminders",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svcs, err := openServices()
			if err != nil {
				return err
			}

			items, err := svcs.reminders.ListByPet(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printReminders(items)
		},
	}
}

func newReminderDueCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "due",
		Short: "List reminders that are due right now",
		RunE: func(cmd *cobra.Command, args []string) error {
			svcs, err := openServices()
			if err != nil {
				return err
			}

			items, err := svcs.reminders.Due(cmd.Context(), time.Now())
			if err != nil {
				return err
			}
			return printReminders(items)
		},
	}
}

func newReminderRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <reminder-id>",
		Short: "Delete a reminder",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svcs, err := openServices()
			if err != nil {
				return err
			}

			removed, err := svcs.reminders.Delete(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if !removed {
				return fmt.Errorf("reminder %s not found", args[0])
			}

			fmt.Println("Reminder removed.")
			return nil
		},
	}
}

func printReminders(items []reminders.Reminder) error {
	if len(items) == 0 {
		fmt.Println("No reminders.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tPET\tNAME\tWHEN\tREPEATS")
	for _, rem := range items {
		when := "any time"
		if rem.RemindAt != nil {
			when = rem.RemindAt.Format(time.RFC3339)
		}
		repeats := "-"
		if rem.Recurrence != nil {
			repeats = fmt.Sprintf("every %d %s", rem.Recurrence.Interval, rem.Recurrence.Frequency)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", rem.ID, rem.PetID, rem.Name, when, repeats)
	}
	return w.Flush()
}
