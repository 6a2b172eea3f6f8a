package jsonfile

import (
	"context"
	"errors"
	"strings"

	"pet-care-log/internal/domain/pets"
)

type petRepo struct {
	s *Store
}

func (r petRepo) Create(ctx context.Context, p pets.Pet) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if strings.TrimSpace(p.ID) == "" {
		return errors.New("pet id required")
	}
	if _, exists := r.s.pets[p.ID]; exists {
		return errors.New("pet already exists")
	}

	r.s.pets[p.ID] = p
	r.s.petOrder = append(r.s.petOrder, p.ID)

	// Si el persist falla, la mutación en memoria queda aplicada; memoria y
	// disco convergen en el próximo save exitoso.
	return r.s.save(ctx)
}

func (r petRepo) GetByID(ctx context.Context, id string) (pets.Pet, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	p, ok := r.s.pets[id]
	if !ok {
		return pets.Pet{}, pets.ErrNotFound
	}
	return p, nil
}

func (r petRepo) List(ctx context.Context) ([]pets.Pet, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]pets.Pet, 0, len(r.s.petOrder))
	for _, id := range r.s.petOrder {
		out = append(out, r.s.pets[id])
	}
	return out, nil
}

func (r petRepo) Update(ctx context.Context, p pets.Pet) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, exists := r.s.pets[p.ID]; !exists {
		return pets.ErrNotFound
	}

	r.s.pets[p.ID] = p
	return r.s.save(ctx)
}

// Delete elimina la mascota y cascadea sobre sus actividades y recordatorios
// dentro de la misma sección crítica.
func (r petRepo) Delete(ctx context.Context, id string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, exists := r.s.pets[id]; !exists {
		return false, nil
	}

	for _, aid := range r.s.activityOrder {
		if r.s.activities[aid].PetID == id {
			delete(r.s.activities, aid)
		}
	}
	r.s.activityOrder = keepKnown(r.s.activityOrder, func(aid string) bool {
		_, ok := r.s.activities[aid]
		return ok
	})

	for _, rid := range r.s.reminderOrder {
		if r.s.reminders[rid].PetID == id {
			delete(r.s.reminders, rid)
		}
	}
	r.s.reminderOrder = keepKnown(r.s.reminderOrder, func(rid string) bool {
		_, ok := r.s.reminders[rid]
		return ok
	})

	delete(r.s.pets, id)
	r.s.petOrder = removeID(r.s.petOrder, id)

	if err := r.s.save(ctx); err != nil {
		return true, err
	}
	return true, nil
}

func keepKnown(order []string, known func(string) bool) []string {
	out := order[:0]
	for _, id := range order {
		if known(id) {
			out = append(out, id)
		}
	}
	return out
}
