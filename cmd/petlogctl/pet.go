package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"pet-care-log/internal/domain/pets"

	"github.com/spf13/cobra"
)

func newPetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pet",
		Short: "Manage pets",
	}

	cmd.AddCommand(newPetAddCmd())
	cmd.AddCommand(newPetListCmd())
	cmd.AddCommand(newPetArchiveCmd())
	cmd.AddCommand(newPetRemoveCmd())

	return cmd
}

func newPetAddCmd() *cobra.Command {
	var (
		flagName  string
		flagNotes string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Register a new pet",
		RunE: func(cmd *cobra.Command, args []string) error {
			svcs, err := openServices()
			if err != nil {
				return err
			}

			p, err := svcs.pets.Create(cmd.Context(), pets.CreateInput{
				Name:  flagName,
				Notes: flagNotes,
			})
			if err != nil {
				return err
			}

			fmt.Printf("Added pet %q (%s)\n", p.Name, p.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&flagName, "name", "", "Pet name (required)")
	cmd.Flags().StringVar(&flagNotes, "notes", "", "Free-form notes")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newPetListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List pets",
		RunE: func(cmd *cobra.Command, args []string) error {
			svcs, err := openServices()
			if err != nil {
				return err
			}

			items, err := svcs.pets.List(cmd.Context())
			if err != nil {
				return err
			}
			if len(items) == 0 {
				fmt.Println("No pets registered yet.")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tNOTES\tCREATED\tSTATUS")
			for _, p := range items {
				status := "active"
				if p.Archived() {
					status = "archived"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
					p.ID, p.Name, p.Notes, p.CreatedAt.Format(time.DateOnly), status)
			}
			return w.Flush()
		},
	}
}

func newPetArchiveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "archive <pet-id>",
		Short: "Archive a pet (keeps its history)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svcs, err := openServices()
			if err != nil {
				return err
			}

			p, err := svcs.pets.Archive(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			fmt.Printf("Archived pet %q\n", p.Name)
			return nil
		},
	}
}

func newPetRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <pet-id>",
		Short: "Delete a pet and all its activities and reminders",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svcs, err := openServices()
			if err != nil {
				return err
			}

			removed, err := svcs.pets.Delete(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if !removed {
				return fmt.Errorf("pet %s not found", args[0])
			}

			fmt.Println("Pet and its dependents removed.")
			return nil
		},
	}
}
