package activities

import "context"

type Repository interface {
	// Create falla con ErrPetNotFound si PetID no referencia una mascota viva.
	Create(ctx context.Context, a Activity) error
	GetByID(ctx context.Context, id string) (Activity, error)
	List(ctx context.Context) ([]Activity, error)
	ListByPet(ctx context.Context, petID string) ([]Activity, error)

	// Update revalida PetID (puede haber cambiado) con la misma regla que Create.
	Update(ctx context.Context, a Activity) error

	// Delete devuelve false (sin error) si la actividad no existe.
	Delete(ctx context.Context, id string) (bool, error)
}
