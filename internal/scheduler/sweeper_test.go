package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"pet-care-log/internal/domain/reminders"
	"pet-care-log/internal/platform/logger"
)

type fakeSource struct {
	due         []reminders.Reminder
	dueErr      error
	advanced    int
	advanceErr  error
	advanceCall bool
}

func (f *fakeSource) Due(ctx context.Context, at time.Time) ([]reminders.Reminder, error) {
	return f.due, f.dueErr
}

func (f *fakeSource) AdvanceRecurring(ctx context.Context, at time.Time) (int, error) {
	f.advanceCall = true
	return f.advanced, f.advanceErr
}

func TestSweep_AdvancesAfterListingDue(t *testing.T) {
	src := &fakeSource{
		due: []reminders.Reminder{
			{ID: "rem-1", PetID: "pet-1", Name: "Vet"},
		},
		advanced: 1,
	}

	s := New(src, logger.Nop(), time.UTC)
	s.now = func() time.Time { return time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC) }

	s.Sweep()

	if !src.advanceCall {
		t.Fatal("expected AdvanceRecurring to run")
	}
}

func TestSweep_SkipsAdvanceWhenListingFails(t *testing.T) {
	src := &fakeSource{dueErr: errors.New("boom")}

	s := New(src, logger.Nop(), time.UTC)
	s.Sweep()

	if src.advanceCall {
		t.Fatal("AdvanceRecurring must not run after a failed listing")
	}
}

func TestStartStop(t *testing.T) {
	s := New(&fakeSource{}, logger.Nop(), time.UTC)
	if err := s.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	s.Stop()
}
