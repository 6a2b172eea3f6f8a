package pets

import "context"

type Repository interface {
	Create(ctx context.Context, p Pet) error
	GetByID(ctx context.Context, id string) (Pet, error)
	List(ctx context.Context) ([]Pet, error)
	Update(ctx context.Context, p Pet) error

	// Delete elimina la mascota y, en cascada, todas sus actividades y
	// recordatorios. Devuelve false (sin error) si no existe.
	Delete(ctx context.Context, id string) (bool, error)
}
