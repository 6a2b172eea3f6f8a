package activities

import (
	"context"
	"errors"
	"testing"
	"time"

	"pet-care-log/internal/domain/recurrence"
)

// -------------------------
// Test repo (in-memory)
// -------------------------

type testRepo struct {
	byID   map[string]Activity
	order  []string
	petIDs map[string]bool // mascotas "vivas" para la regla de FK
}

func newTestRepo(petIDs ...string) *testRepo {
	r := &testRepo{
		byID:   map[string]Activity{},
		petIDs: map[string]bool{},
	}
	for _, id := range petIDs {
		r.petIDs[id] = true
	}
	return r
}

func (r *testRepo) Create(ctx context.Context, a Activity) error {
	if a.ID == "" {
		return errors.New("repo: id required")
	}
	if !r.petIDs[a.PetID] {
		return ErrPetNotFound
	}
	if _, ok := r.byID[a.ID]; ok {
		return errors.New("repo: already exists")
	}
	r.byID[a.ID] = a
	r.order = append(r.order, a.ID)
	return nil
}

func (r *testRepo) GetByID(ctx context.Context, id string) (Activity, error) {
	a, ok := r.byID[id]
	if !ok {
		return Activity{}, ErrNotFound
	}
	return a, nil
}

func (r *testRepo) List(ctx context.Context) ([]Activity, error) {
	out := make([]Activity, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.byID[id])
	}
	return out, nil
}

func (r *testRepo) ListByPet(ctx context.Context, petID string) ([]Activity, error) {
	out := make([]Activity, 0)
	for _, id := range r.order {
		if a := r.byID[id]; a.PetID == petID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *testRepo) Update(ctx context.Context, a Activity) error {
	if _, ok := r.byID[a.ID]; !ok {
		return ErrNotFound
	}
	if !r.petIDs[a.PetID] {
		return ErrPetNotFound
	}
	r.byID[a.ID] = a
	return nil
}

func (r *testRepo) Delete(ctx context.Context, id string) (bool, error) {
	if _, ok := r.byID[id]; !ok {
		return false, nil
	}
	delete(r.byID, id)
	for i, v := range r.order {
		if v == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return true, nil
}

func newTestService(repo Repository, now time.Time) *Service {
	svc := NewService(repo)
	svc.now = func() time.Time { return now }
	return svc
}

// -------------------------
// Tests
// -------------------------

func TestCreate_DefaultsOccurredAtToNow(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	svc := newTestService(newTestRepo("pet-1"), now)

	a, err := svc.Create(context.Background(), "pet-1", CreateInput{Name: "Feeding"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if a.ID == "" {
		t.Fatal("expected assigned id")
	}
	if !a.OccurredAt.Equal(now) {
		t.Fatalf("occurred_at = %s, want %s", a.OccurredAt, now)
	}
	if !a.CreatedAt.Equal(now) || !a.UpdatedAt.Equal(now) {
		t.Fatal("expected created_at == updated_at == now")
	}
}

func TestCreate_UnknownPetFailsAndDoesNotMutate(t *testing.T) {
	repo := newTestRepo("pet-1")
	svc := newTestService(repo, time.Now())

	_, err := svc.Create(context.Background(), "ghost", CreateInput{Name: "Feeding"})
	if !errors.Is(err, ErrPetNotFound) {
		t.Fatalf("err = %v, want ErrPetNotFound", err)
	}
	if len(repo.byID) != 0 {
		t.Fatal("collection mutated on failed create")
	}
}

func TestCreate_NormalizesRecurrenceInterval(t *testing.T) {
	svc := newTestService(newTestRepo("pet-1"), time.Now())

	a, err := svc.Create(context.Background(), "pet-1", CreateInput{
		Name:       "Deworming",
		Recurrence: &recurrence.Info{Frequency: recurrence.FrequencyMonthly, Interval: 0},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if a.Recurrence == nil || a.Recurrence.Interval != 1 {
		t.Fatalf("recurrence = %+v, want interval clamped to 1", a.Recurrence)
	}
}

func TestCreate_NoneRecurrenceStoredAsNil(t *testing.T) {
	svc := newTestService(newTestRepo("pet-1"), time.Now())

	a, err := svc.Create(context.Background(), "pet-1", CreateInput{
		Name:       "Walk",
		Recurrence: &recurrence.Info{Frequency: recurrence.FrequencyNone},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if a.Recurrence != nil {
		t.Fatalf("recurrence = %+v, want nil for frequency none", a.Recurrence)
	}
}

func TestUpdate_RevalidatesPetID(t *testing.T) {
	now := time.Now()
	repo := newTestRepo("pet-1")
	svc := newTestService(repo, now)

	a, err := svc.Create(context.Background(), "pet-1", CreateInput{Name: "Feeding"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	ghost := "ghost"
	if _, err := svc.Update(context.Background(), a.ID, UpdateInput{PetID: &ghost}); !errors.Is(err, ErrPetNotFound) {
		t.Fatalf("err = %v, want ErrPetNotFound", err)
	}
}

func TestUpdate_ClearRecurrence(t *testing.T) {
	svc := newTestService(newTestRepo("pet-1"), time.Now())

	a, err := svc.Create(context.Background(), "pet-1", CreateInput{
		Name:       "Medication",
		Recurrence: &recurrence.Info{Frequency: recurrence.FrequencyDaily, Interval: 1},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := svc.Update(context.Background(), a.ID, UpdateInput{ClearRecurrence: true})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if got.Recurrence != nil {
		t.Fatalf("recurrence = %+v, want nil after clear", got.Recurrence)
	}
}

func TestUpdate_NotFound(t *testing.T) {
	svc := newTestService(newTestRepo("pet-1"), time.Now())

	name := "Walk"
	if _, err := svc.Update(context.Background(), "missing", UpdateInput{Name: &name}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestDelete_SoftFailWhenAbsent(t *testing.T) {
	svc := newTestService(newTestRepo("pet-1"), time.Now())

	removed, err := svc.Delete(context.Background(), "missing")
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if removed {
		t.Fatal("expected removed=false")
	}
}
