package pets

import (
	"context"
	"errors"
	"testing"
	"time"
)

// -------------------------
// Test repo (in-memory)
// -------------------------

type testRepo struct {
	byID  map[string]Pet
	order []string
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]Pet{}}
}

func (r *testRepo) Create(ctx context.Context, p Pet) error {
	if p.ID == "" {
		return errors.New("repo: id required")
	}
	if _, ok := r.byID[p.ID]; ok {
		return errors.New("repo: already exists")
	}
	r.byID[p.ID] = p
	r.order = append(r.order, p.ID)
	return nil
}

func (r *testRepo) GetByID(ctx context.Context, id string) (Pet, error) {
	p, ok := r.byID[id]
	if !ok {
		return Pet{}, ErrNotFound
	}
	return p, nil
}

func (r *testRepo) List(ctx context.Context) ([]Pet, error) {
	out := make([]Pet, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.byID[id])
	}
	return out, nil
}

func (r *testRepo) Update(ctx context.Context, p Pet) error {
	if _, ok := r.byID[p.ID]; !ok {
		return ErrNotFound
	}
	r.byID[p.ID] = p
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

func TestCreate_StampsIDAndTimestamps(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	svc := newTestService(newTestRepo(), now)

	p, err := svc.Create(context.Background(), CreateInput{Name: "  Luna ", Notes: "indoor cat"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if p.ID == "" {
		t.Fatal("expected assigned id")
	}
	if p.Name != "Luna" {
		t.Fatalf("name = %q, want trimmed %q", p.Name, "Luna")
	}
	if !p.CreatedAt.Equal(now) || !p.UpdatedAt.Equal(now) {
		t.Fatalf("timestamps = %s / %s, want both %s", p.CreatedAt, p.UpdatedAt, now)
	}

	got, err := svc.GetByID(context.Background(), p.ID)
	if err != nil {
		t.Fatalf("GetByID after create: %v", err)
	}
	if got != p {
		t.Fatalf("stored pet differs: %+v vs %+v", got, p)
	}
}

func TestCreate_KeepsCallerProvidedID(t *testing.T) {
	svc := newTestService(newTestRepo(), time.Now())

	p, err := svc.Create(context.Background(), CreateInput{ID: "pet-luna", Name: "Luna"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if p.ID != "pet-luna" {
		t.Fatalf("id = %q, want pet-luna", p.ID)
	}
}

func TestCreate_RequiresName(t *testing.T) {
	svc := newTestService(newTestRepo(), time.Now())

	if _, err := svc.Create(context.Background(), CreateInput{Name: "   "}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("err = %v, want ErrInvalidInput", err)
	}
}

func TestUpdate_NotFound(t *testing.T) {
	svc := newTestService(newTestRepo(), time.Now())

	name := "Milo"
	if _, err := svc.Update(context.Background(), "missing", UpdateInput{Name: &name}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestUpdate_PatchesOnlyProvidedFields(t *testing.T) {
	created := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	repo := newTestRepo()
	svc := newTestService(repo, created)

	p, err := svc.Create(context.Background(), CreateInput{Name: "Luna", Notes: "indoor cat"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	later := created.Add(time.Hour)
	svc.now = func() time.Time { return later }

	notes := "moved outdoors"
	got, err := svc.Update(context.Background(), p.ID, UpdateInput{Notes: &notes})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}

	if got.Name != "Luna" {
		t.Fatalf("name changed unexpectedly: %q", got.Name)
	}
	if got.Notes != "moved outdoors" {
		t.Fatalf("notes = %q", got.Notes)
	}
	if !got.CreatedAt.Equal(created) {
		t.Fatal("created_at must not change on update")
	}
	if !got.UpdatedAt.Equal(later) {
		t.Fatalf("updated_at = %s, want %s", got.UpdatedAt, later)
	}
}

func TestArchive_DoesNotDelete(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	svc := newTestService(newTestRepo(), now)

	p, err := svc.Create(context.Background(), CreateInput{Name: "Luna"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	archived, err := svc.Archive(context.Background(), p.ID)
	if err != nil {
		t.Fatalf("Archive: %v", err)
	}
	if !archived.Archived() {
		t.Fatal("expected archived_at set")
	}

	// Sigue siendo recuperable: archivar no borra.
	if _, err := svc.GetByID(context.Background(), p.ID); err != nil {
		t.Fatalf("GetByID after archive: %v", err)
	}

	back, err := svc.Unarchive(context.Background(), p.ID)
	if err != nil {
		t.Fatalf("Unarchive: %v", err)
	}
	if back.Archived() {
		t.Fatal("expected archived_at cleared")
	}
}

func TestDelete_SoftFailWhenAbsent(t *testing.T) {
	svc := newTestService(newTestRepo(), time.Now())

	removed, err := svc.Delete(context.Background(), "missing")
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if removed {
		t.Fatal("expected removed=false for missing pet")
	}
}
