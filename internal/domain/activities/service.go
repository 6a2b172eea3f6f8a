package activities

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
	ErrNotFound     = errors.New("activity not found")
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
	OccurredAt time.Time // cero = ahora
	Recurrence *recurrence.Info
}

func (s *Service) Create(ctx context.Context, petID string, in CreateInput) (Activity, error) {
	petID = strings.TrimSpace(petID)
	if petID == "" {
		return Activity{}, ErrInvalidInput
	}
	if strings.TrimSpace(in.Name) == "" {
		return Activity{}, ErrInvalidInput
	}

	now := s.now()

	id := strings.TrimSpace(in.ID)
	if id == "" {
		id = uuid.NewString()
	}

	occurred := in.OccurredAt
	if occurred.IsZero() {
		occurred = now
	}

	a := Activity{
		ID:         id,
		PetID:      petID,
		Name:       strings.TrimSpace(in.Name),
		Notes:      strings.TrimSpace(in.Notes),
		OccurredAt: occurred,
		Recurrence: normalizeRecurrence(in.Recurrence),
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.repo.Create(ctx, a); err != nil {
		return Activity{}, err
	}
	return a, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Activity, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Activity{}, ErrInvalidInput
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]Activity, error) {
	return s.repo.List(ctx)
}

func (s *Service) ListByPet(ctx context.Context, petID string) ([]Activity, error) {
	petID = strings.TrimSpace(petID)
	if petID == "" {
		return nil, ErrInvalidInput
	}
	return s.repo.ListByPet(ctx, petID)
}

type UpdateInput struct {
	// Punteros para PATCH real: nil = no tocar.
	PetID      *string
	Name       *string
	Notes      *string
	OccurredAt *time.Time

	// Recurrence reemplaza la info completa cuando viene;
	// ClearRecurrence la elimina. Nunca ambos a la vez.
	Recurrence      *recurrence.Info
	ClearRecurrence bool
}

func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (Activity, error) {
	a, err := s.GetByID(ctx, id)
	if err != nil {
		return Activity{}, err
	}

	if in.PetID != nil {
		petID := strings.TrimSpace(*in.PetID)
		if petID == "" {
			return Activity{}, ErrInvalidInput
		}
		a.PetID = petID
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return Activity{}, ErrInvalidInput
		}
		a.Name = name
	}
	if in.Notes != nil {
		a.Notes = strings.TrimSpace(*in.Notes)
	}
	if in.OccurredAt != nil {
		if in.OccurredAt.IsZero() {
			return Activity{}, ErrInvalidInput
		}
		a.OccurredAt = *in.OccurredAt
	}
	if in.ClearRecurrence {
		a.Recurrence = nil
	} else if in.Recurrence != nil {
		a.Recurrence = normalizeRecurrence(in.Recurrence)
	}

	a.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, a); err != nil {
		return Activity{}, err
	}
	return a, nil
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
