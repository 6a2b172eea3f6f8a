package pets

import "time"

// Pet representa una mascota registrada en la bitácora de cuidados.
// Es la raíz del agregado: actividades y recordatorios referencian su ID.
type Pet struct {
	ID string

	Name  string
	Notes string

	CreatedAt time.Time
	UpdatedAt time.Time

	// ArchivedAt marca archivado "suave": la mascota sigue existiendo y
	// sus dependientes no se tocan. Solo Delete elimina en cascada.
	ArchivedAt *time.Time
}

// Archived indica si la mascota está archivada.
func (p Pet) Archived() bool {
	return p.ArchivedAt != nil
}
