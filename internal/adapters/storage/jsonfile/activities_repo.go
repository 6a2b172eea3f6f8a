package jsonfile

import (
	"context"
	"errors"
	"strings"

	"pet-care-log/internal/domain/activities"
)

type activityRepo struct {
	s *Store
}

func (r activityRepo) Create(ctx context.Context, a activities.Activity) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if strings.TrimSpace(a.ID) == "" {
		return errors.New("activity id required")
	}
	if _, ok := r.s.pets[a.PetID]; !ok {
		return activities.ErrPetNotFound
	}
	if _, exists := r.s.activities[a.ID]; exists {
		return errors.New("activity already exists")
	}

	r.s.activities[a.ID] = a
	r.s.activityOrder = append(r.s.activityOrder, a.ID)
	return r.s.save(ctx)
}

func (r activityRepo) GetByID(ctx context.Context, id string) (activities.Activity, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	a, ok := r.s.activities[id]
	if !ok {
		return activities.Activity{}, activities.ErrNotFound
	}
	return a, nil
}

func (r activityRepo) List(ctx context.Context) ([]activities.Activity, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]activities.Activity, 0, len(r.s.activityOrder))
	for _, id := range r.s.activityOrder {
		out = append(out, r.s.activities[id])
	}
	return out, nil
}

func (r activityRepo) ListByPet(ctx context.Context, petID string) ([]activities.Activity, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]activities.Activity, 0)
	for _, id := range r.s.activityOrder {
		if a := r.s.activities[id]; a.PetID == petID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r activityRepo) Update(ctx context.Context, a activities.Activity) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, exists := r.s.activities[a.ID]; !exists {
		return activities.ErrNotFound
	}
	// El PetID puede haber cambiado: misma regla que en Create.
	if _, ok := r.s.pets[a.PetID]; !ok {
		return activities.ErrPetNotFound
	}

	r.s.activities[a.ID] = a
	return r.s.save(ctx)
}

func (r activityRepo) Delete(ctx context.Context, id string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, exists := r.s.activities[id]; !exists {
		return false, nil
	}

	delete(r.s.activities, id)
	r.s.activityOrder = removeID(r.s.activityOrder, id)

	if err := r.s.save(ctx); err != nil {
		return true, err
	}
	return true, nil
}
