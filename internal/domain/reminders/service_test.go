package reminders

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
	byID   map[string]Reminder
	order  []string
	petIDs map[string]bool
}

func newTestRepo(petIDs ...string) *testRepo {
	r := &testRepo{
		byID:   map[string]Reminder{},
		petIDs: map[string]bool{},
	}
	for _, id := range petIDs {
		r.petIDs[id] = true
	}
	return r
}

func (r *testRepo) Create(ctx context.Context, rem Reminder) error {
	if rem.ID == "" {
		return errors.New("repo: id required")
	}
	if !r.petIDs[rem.PetID] {
		return ErrPetNotFound
	}
	if _, ok := r.byID[rem.ID]; ok {
		return errors.New("repo: already exists")
	}
	r.byID[rem.ID] = rem
	r.order = append(r.order, rem.ID)
	return nil
}

func (r *testRepo) GetByID(ctx context.Context, id string) (Reminder, error) {
	rem, ok := r.byID[id]
	if !ok {
		return Reminder{}, ErrNotFound
	}
	return rem, nil
}

func (r *testRepo) List(ctx context.Context) ([]Reminder, error) {
	out := make([]Reminder, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.byID[id])
	}
	return out, nil
}

func (r *testRepo) ListByPet(ctx context.Context, petID string) ([]Reminder, error) {
	out := make([]Reminder, 0)
	for _, id := range r.order {
		if rem := r.byID[id]; rem.PetID == petID {
			out = append(out, rem)
		}
	}
	return out, nil
}

func (r *testRepo) Update(ctx context.Context, rem Reminder) error {
	if _, ok := r.byID[rem.ID]; !ok {
		return ErrNotFound
	}
	if !r.petIDs[rem.PetID] {
		return ErrPetNotFound
	}
	r.byID[rem.ID] = rem
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

func tp(t time.Time) *time.Time { return &t }

// -------------------------
// Tests
// -------------------------

func TestCreate_UnknownPetFailsAndDoesNotMutate(t *testing.T) {
	repo := newTestRepo("pet-1")
	svc := newTestService(repo, time.Now())

	_, err := svc.Create(context.Background(), "ghost", CreateInput{Name: "Vet visit"})
	if !errors.Is(err, ErrPetNotFound) {
		t.Fatalf("err = %v, want ErrPetNotFound", err)
	}
	if len(repo.byID) != 0 {
		t.Fatal("collection mutated on failed create")
	}
}

func TestUpdate_NotFoundLeavesCollectionUntouched(t *testing.T) {
	now := time.Now()
	repo := newTestRepo("pet-1")
	svc := newTestService(repo, now)

	existing, err := svc.Create(context.Background(), "pet-1", CreateInput{Name: "Vaccination"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	name := "Changed"
	if _, err := svc.Update(context.Background(), "missing", UpdateInput{Name: &name}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}

	if len(repo.byID) != 1 {
		t.Fatalf("collection size changed: %d", len(repo.byID))
	}
	got, _ := repo.GetByID(context.Background(), existing.ID)
	if got.Name != "Vaccination" {
		t.Fatalf("existing reminder mutated: %+v", got)
	}
}

func TestDue_IncludesNilRemindAtAndExcludesFuture(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	repo := newTestRepo("pet-1")
	svc := newTestService(repo, now)

	anytime, err := svc.Create(context.Background(), "pet-1", CreateInput{Name: "Anytime"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	overdue, err := svc.Create(context.Background(), "pet-1", CreateInput{
		Name:     "Overdue",
		RemindAt: tp(now.Add(-time.Hour)),
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := svc.Create(context.Background(), "pet-1", CreateInput{
		Name:     "Future",
		RemindAt: tp(now.Add(time.Hour)),
	}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	due, err := svc.Due(context.Background(), now)
	if err != nil {
		t.Fatalf("Due: %v", err)
	}
	if len(due) != 2 {
		t.Fatalf("due count = %d, want 2", len(due))
	}

	ids := map[string]bool{}
	for _, rem := range due {
		ids[rem.ID] = true
	}
	if !ids[anytime.ID] || !ids[overdue.ID] {
		t.Fatalf("unexpected due set: %v", ids)
	}
}

func TestAdvanceRecurring(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	repo := newTestRepo("pet-1")
	svc := newTestService(repo, now)

	recurring, err := svc.Create(context.Background(), "pet-1", CreateInput{
		Name:       "Flea treatment",
		RemindAt:   tp(now.Add(-48 * time.Hour)),
		Recurrence: &recurrence.Info{Frequency: recurrence.FrequencyDaily, Interval: 1},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	oneShot, err := svc.Create(context.Background(), "pet-1", CreateInput{
		Name:     "One shot",
		RemindAt: tp(now.Add(-time.Hour)),
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	n, err := svc.AdvanceRecurring(context.Background(), now)
	if err != nil {
		t.Fatalf("AdvanceRecurring: %v", err)
	}
	if n != 1 {
		t.Fatalf("advanced = %d, want 1", n)
	}

	got, err := svc.GetByID(context.Background(), recurring.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.RemindAt == nil || !got.RemindAt.After(now) {
		t.Fatalf("remind_at = %v, want after %s", got.RemindAt, now)
	}
	if got.Recurrence == nil || got.Recurrence.NextAt == nil || !got.Recurrence.NextAt.Equal(*got.RemindAt) {
		t.Fatalf("recurrence next_at not kept in sync: %+v", got.Recurrence)
	}

	// El vencido sin recurrencia no se toca.
	still, _ := svc.GetByID(context.Background(), oneShot.ID)
	if still.RemindAt == nil || !still.RemindAt.Equal(now.Add(-time.Hour)) {
		t.Fatalf("one-shot reminder mutated: %+v", still)
	}
}

func TestAdvanceRecurring_RespectsEndDate(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	end := now.Add(-24 * time.Hour)
	repo := newTestRepo("pet-1")
	svc := newTestService(repo, now)

	if _, err := svc.Create(context.Background(), "pet-1", CreateInput{
		Name:       "Expired series",
		RemindAt:   tp(now.Add(-48 * time.Hour)),
		Recurrence: &recurrence.Info{Frequency: recurrence.FrequencyDaily, Interval: 1, EndAt: &end},
	}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	n, err := svc.AdvanceRecurring(context.Background(), now)
	if err != nil {
		t.Fatalf("AdvanceRecurring: %v", err)
	}
	if n != 0 {
		t.Fatalf("advanced = %d, want 0 (series ended)", n)
	}
}

func TestUpdate_ClearRemindAt(t *testing.T) {
	now := time.Now()
	svc := newTestService(newTestRepo("pet-1"), now)

	rem, err := svc.Create(context.Background(), "pet-1", CreateInput{
		Name:     "Grooming",
		RemindAt: tp(now.Add(time.Hour)),
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := svc.Update(context.Background(), rem.ID, UpdateInput{ClearRemindAt: true})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if got.RemindAt != nil {
		t.Fatalf("remind_at = %v, want nil", got.RemindAt)
	}
	if !got.DueAt(now) {
		t.Fatal("reminder without remind_at must count as due")
	}
}
