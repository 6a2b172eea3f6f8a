package reminders

import "context"

type Repository interface {
	// Create falla con ErrPetNotFound si PetID no referencia una mascota viva.
	Create(ctx context.Context, rem Reminder) error
	GetByID(ctx context.Context, id string) (Reminder, error)
	List(ctx context.Context) ([]Reminder, error)
	ListByPet(ctx context.Context, petID string) ([]Reminder, error)

	// Update revalida PetID (puede haber cambiado) con la misma regla que Create.
	Update(ctx context.Context, rem Reminder) error

	// Delete devuelve false (sin error) si el recordatorio no existe.
	Delete(ctx context.Context, id string) (bool, error)
}
