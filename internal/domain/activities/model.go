package activities

import (
	"time"

	"pet-care-log/internal/domain/recurrence"
)

// Activity es un registro de cuidado (comida, paseo, medicación) de una
// mascota concreta. PetID debe referenciar una mascota viva al crear
// o actualizar.
type Activity struct {
	ID    string
	PetID string

	Name  string
	Notes string

	OccurredAt time.Time

	// Recurrence es opcional: nil = ocurrencia única.
	Recurrence *recurrence.Info

	CreatedAt time.Time
	UpdatedAt time.Time
}
