package reminders

import (
	"context"
	"errors"
	"strings"
	"time"

	"pet-care-log/internal/domain/recurrence"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("reminder not found")
	ErrPetNotFound  = errors.New("pet not found")
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

type CreateInput struct {
	ID         string // opcional; si viene vacío se asigna uno nuevo
	Name       string
	Notes      string
	RemindAt   *time.Time // nil = listo en cualquier momento
	Recurrence *recurrence.Info
}

func (s *Service) Create(ctx context.Context, petID string, in CreateInput) (Reminder, error) {
	petID = strings.TrimSpace(petID)
	if petID == "" {
		return Reminder{}, ErrInvalidInput
	}
	if strings.TrimSpace(in.Name) == "" {
		return Reminder{}, ErrInvalidInput
	}

	now := s.now()

	id := strings.TrimSpace(in.ID)
	if id == "" {
		id = uuid.NewString()
	}

	rem := Reminder{
		ID:         id,
		PetID:      petID,
		Name:       strings.TrimSpace(in.Name),
		Notes:      strings.TrimSpace(in.Notes),
		RemindAt:   in.RemindAt,
		Recurrence: normalizeRecurrence(in.Recurrence),
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.repo.Create(ctx, rem); err != nil {
		return Reminder{}, err
	}
	return rem, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Reminder, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Reminder{}, ErrInvalidInput
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]Reminder, error) {
	return s.repo.List(ctx)
}

func (s *Service) ListByPet(ctx context.Context, petID string) ([]Reminder, error) {
	petID = strings.TrimSpace(petID)
	if petID == "" {
		return nil, ErrInvalidInput
	}
	return s.repo.ListByPet(ctx, petID)
}

// Due devuelve los recordatorios vencidos en el instante dado,
// incluidos los que no tienen remind_at ("listo en cualquier momento").
func (s *Service) Due(ctx context.Context, at time.Time) ([]Reminder, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]Reminder, 0)
	for _, rem := range items {
		if rem.DueAt(at) {
			out = append(out, rem)
		}
	}
	return out, nil
}

// AdvanceRecurring mueve el remind_at de cada recordatorio vencido y
// repetitivo a su siguiente ocurrencia posterior a "at". Devuelve cuántos
// avanzó. Los vencidos sin repetición (o más allá de end_date) se dejan
// como están.
func (s *Service) AdvanceRecurring(ctx context.Context, at time.Time) (int, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return 0, err
	}

	advanced := 0
	for _, rem := range items {
		if rem.RemindAt == nil || rem.Recurrence == nil || !rem.DueAt(at) {
			continue
		}
		next, ok := rem.Recurrence.NextAfter(*rem.RemindAt, at)
		if !ok {
			continue
		}

		rem.RemindAt = &next
		rec := *rem.Recurrence
		rec.NextAt = &next
		rem.Recurrence = &rec
		rem.UpdatedAt = s.now()

		if err := s.repo.Update(ctx, rem); err != nil {
			return advanced, err
		}
		advanced++
	}
	return advanced, nil
}

type UpdateInput struct {
	// Punteros para PATCH real: nil = no tocar.
	PetID *string
	Name  *string
	Notes *string

	// RemindAt reemplaza el instante cuando viene; ClearRemindAt lo quita
	// ("listo en cualquier momento"). Idem para Recurrence.
	RemindAt      *time.Time
	ClearRemindAt bool

	Recurrence      *recurrence.Info
	ClearRecurrence bool
}

func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (Reminder, error) {
	rem, err := s.GetByID(ctx, id)
	if err != nil {
		return Reminder{}, err
	}

	if in.PetID != nil {
		petID := strings.TrimSpace(*in.PetID)
		if petID == "" {
			return Reminder{}, ErrInvalidInput
		}
		rem.PetID = petID
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return Reminder{}, ErrInvalidInput
		}
		rem.Name = name
	}
	if in.Notes != nil {
		rem.Notes = strings.TrimSpace(*in.Notes)
	}
	if in.ClearRemindAt {
		rem.RemindAt = nil
	} else if in.RemindAt != nil {
		rem.RemindAt = in.RemindAt
	}
	if in.ClearRecurrence {
		rem.Recurrence = nil
	} else if in.Recurrence != nil {
		rem.Recurrence = normalizeRecurrence(in.Recurrence)
	}

	rem.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, rem); err != nil {
		return Reminder{}, err
	}
	return rem, nil
}

func (s *Service) Delete(ctx context.Context, id string) (bool, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return false, ErrInvalidInput
	}
	return s.repo.Delete(ctx, id)
}

func normalizeRecurrence(info *recurrence.Info) *recurrence.Info {
	if info == nil {
		return nil
	}
	n := info.Normalize()
	if n.Frequency == recurrence.FrequencyNone {
		return nil
	}
	return &n
}
