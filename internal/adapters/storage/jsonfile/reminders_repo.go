package jsonfile

import (
	"context"
	"errors"
	"strings"

	"pet-care-log/internal/domain/reminders"
)

type reminderRepo struct {
	s *Store
}

func (r reminderRepo) Create(ctx context.Context, rem reminders.Reminder) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if strings.TrimSpace(rem.ID) == "" {
		return errors.New("reminder id required")
	}
	if _, ok := r.s.pets[rem.PetID]; !ok {
		return reminders.ErrPetNotFound
	}
	if _, exists := r.s.reminders[rem.ID]; exists {
		return errors.New("reminder already exists")
	}

	r.s.reminders[rem.ID] = rem
	r.s.reminderOrder = append(r.s.reminderOrder, rem.ID)
	return r.s.save(ctx)
}

func (r reminderRepo) GetByID(ctx context.Context, id string) (reminders.Reminder, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	rem, ok := r.s.reminders[id]
	if !ok {
		return reminders.Reminder{}, reminders.ErrNotFound
	}
	return rem, nil
}

func (r reminderRepo) List(ctx context.Context) ([]reminders.Reminder, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]reminders.Reminder, 0, len(r.s.reminderOrder))
	for _, id := range r.s.reminderOrder {
		out = append(out, r.s.reminders[id])
	}
	return out, nil
}

func (r reminderRepo) ListByPet(ctx context.Context, petID string) ([]reminders.Reminder, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]reminders.Reminder, 0)
	for _, id := range r.s.reminderOrder {
		if rem := r.s.reminders[id]; rem.PetID == petID {
			out = append(out, rem)
		}
	}
	return out, nil
}

func (r reminderRepo) Update(ctx context.Context, rem reminders.Reminder) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, exists := r.s.reminders[rem.ID]; !exists {
		return reminders.ErrNotFound
	}
	// El PetID puede haber cambiado: misma regla que en Create.
	if _, ok := r.s.pets[rem.PetID]; !ok {
		return reminders.ErrPetNotFound
	}

	r.s.reminders[rem.ID] = rem
	return r.s.save(ctx)
}

func (r reminderRepo) Delete(ctx context.Context, id string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, exists := r.s.reminders[id]; !exists {
		return false, nil
	}

	delete(r.s.reminders, id)
	r.s.reminderOrder = removeID(r.s.reminderOrder, id)

	if err := r.s.save(ctx); err != nil {
		return true, err
	}
	return true, nil
}
