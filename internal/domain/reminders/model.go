package reminders

import (
	"time"

	"pet-care-log/internal/domain/recurrence"
)

// Reminder es un aviso pendiente asociado a una mascota. PetID debe
// referenciar una mascota viva al crear o actualizar.
type Reminder struct {
	ID    string
	PetID string

	Name  string
	Notes string

	// RemindAt nil significa "listo en cualquier momento".
	RemindAt *time.Time

	// Recurrence es opcional: nil = aviso único.
	Recurrence *recurrence.Info

	CreatedAt time.Time
	UpdatedAt time.Time
}

// DueAt indica si el recordatorio está vencido en el instante dado.
// Sin remind_at cuenta como vencido siempre.
func (r Reminder) DueAt(t time.Time) bool {
	return r.RemindAt == nil || !r.RemindAt.After(t)
}
