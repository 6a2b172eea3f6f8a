package main

import (
	"fmt"
	"os"

	"pet-care-log/internal/adapters/storage/jsonfile"
	"pet-care-log/internal/config"
	"pet-care-log/internal/domain/activities"
	"pet-care-log/internal/domain/pets"
	"pet-care-log/internal/domain/reminders"
	"pet-care-log/internal/platform/logger"

	"github.com/spf13/cobra"
)

var flagDataDir string

// services agrupa lo que necesitan los subcomandos.
type services struct {
	pets       *pets.Service
	activities *activities.Service
	reminders  *reminders.Service
}

// openServices abre el snapshot JSON del directorio de datos. Cada mutación
// persiste al salir, así que no hay flush final que coordinar.
func openServices() (*services, error) {
	log := logger.New(logger.Options{Level: logger.Warn, Out: os.Stderr})

	store, err := jsonfile.Open(flagDataDir, log)
	if err != nil {
		return nil, err
	}

	return &services{
		pets:       pets.NewService(store.PetRepo()),
		activities: activities.NewService(store.ActivityRepo()),
		reminders:  reminders.NewService(store.ReminderRepo()),
	}, nil
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "petlogctl",
		Short: "Manage the pet care log from the terminal",
		Long: `petlogctl works directly against the local JSON snapshot used by the
pet-care-log API: register pets, log care activities and keep reminders.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", config.DefaultDataDir, "Data directory for the JSON snapshot")

	cmd.AddCommand(newPetCmd())
	cmd.AddCommand(newActivityCmd())
	cmd.AddCommand(newReminderCmd())

	return cmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
