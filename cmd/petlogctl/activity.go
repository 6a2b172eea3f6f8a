package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"pet-care-log/internal/domain/activities"
	"pet-care-log/internal/domain/recurrence"

	"github.com/spf13/cobra"
)

func newActivityCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "activity",
		Short: "Log and list care activities",
	}

	cmd.AddCommand(newActivityLogCmd())
	cmd.AddCommand(newActivityListCmd())

	return cmd
}

// parseRecurrenceFlags arma la Info de recurrencia a partir de
// --every/--interval/--until; nil si --every no vino.
func parseRecurrenceFlags(every string, interval int, until string) (*recurrence.Info, error) {
	if every == "" {
		return nil, nil
	}

	freq, ok := recurrence.ParseFrequency(every)
	if !ok {
		return nil, fmt.Errorf("invalid --every %q: use daily, weekly, monthly or yearly", every)
	}

	info := recurrence.Info{Frequency: freq, Interval: interval}
	if until != "" {
		t, err := time.Parse(time.DateOnly, until)
		if err != nil {
			return nil, fmt.Errorf("invalid --until %q: use YYYY-MM-DD", until)
		}
		info.EndAt = &t
	}

	n := info.Normalize()
	return &n, nil
}

func newActivityLogCmd() *cobra.Command {
	var (
		flagName     string
		flagNotes    string
		flagAt       string
		flagEvery    string
		flagInterval int
		flagUntil    string
	)

	cmd := &cobra.Command{
		Use:   "log <pet-id>",
		Short: "Log a care activity (feeding, walk, medication...)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svcs, err := openServices()
			if err != nil {
				return err
			}

			var occurred time.Time
			if flagAt != "" {
				occurred, err = time.Parse(time.RFC3339, flagAt)
				if err != nil {
					return fmt.Errorf("invalid --at %q: use RFC3339", flagAt)
				}
			}

			rec, err := parseRecurrenceFlags(flagEvery, flagInterval, flagUntil)
			if err != nil {
				return err
			}

			a, err := svcs.activities.Create(cmd.Context(), args[0], activities.CreateInput{
				Name:       flagName,
				Notes:      flagNotes,
				OccurredAt: occurred,
				Recurrence: rec,
			})
			if err != nil {
				return err
			}

			fmt.Printf("Logged %q at %s (%s)\n", a.Name, a.OccurredAt.Format(time.RFC3339), a.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&flagName, "name", "", "Activity name (required)")
	cmd.Flags().StringVar(&flagNotes, "notes", "", "Free-form notes")
	cmd.Flags().StringVar(&flagAt, "at", "", "Occurrence time, RFC3339 (default: now)")
	cmd.Flags().StringVar(&flagEvery, "every", "", "Recurrence frequency: daily, weekly, monthly, yearly")
	cmd.Flags().IntVar(&flagInterval, "interval", 1, "Recurrence interval (every N units)")
	cmd.Flags().StringVar(&flagUntil, "until", "", "Recurrence end date, YYYY-MM-DD")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newActivityListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list <pet-id>",
		Short: "List a pet's activities",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svcs, err := openServices()
			if err != nil {
				return err
			}

			items, err := svcs.activities.ListByPet(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if len(items) == 0 {
				fmt.Println("No activities logged for this pet.")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tOCCURRED\tREPEATS")
			for _, a := range items {
				repeats := "-"
				if a.Recurrence != nil {
					repeats = fmt.Sprintf("every %d %s", a.Recurrence.Interval, a.Recurrence.Frequency)
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
					a.ID, a.Name, a.OccurredAt.Format(time.RFC3339), repeats)
			}
			return w.Flush()
		},
	}
}
