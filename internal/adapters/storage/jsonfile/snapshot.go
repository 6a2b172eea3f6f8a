package jsonfile

import (
	"time"

	"pet-care-log/internal/domain/activities"
	"pet-care-log/internal/domain/pets"
	"pet-care-log/internal/domain/recurrence"
	"pet-care-log/internal/domain/reminders"
)

// Formato del archivo: un documento JSON con las tres colecciones,
// campos camelCase y opcionales omitidos cuando son null.

type snapshot struct {
	Pets       []petRecord      `json:"pets"`
	Activities []activityRecord `json:"activities"`
	Reminders  []reminderRecord `json:"reminders"`
}

type petRecord struct {
	ID          string     `json:"id"`
	DisplayName string     `json:"displayName"`
	Notes       string     `json:"notes,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   *time.Time `json:"updatedAt,omitempty"`
	ArchivedAt  *time.Time `json:"archivedAt,omitempty"`
}

type activityRecord struct {
	ID          string            `json:"id"`
	PetID       string            `json:"petId"`
	DisplayName string            `json:"displayName"`
	Notes       string            `json:"notes,omitempty"`
	OccurredAt  time.Time         `json:"occurredAt"`
	Recurrence  *recurrenceRecord `json:"recurrence,omitempty"`
	CreatedAt   time.Time         `json:"createdAt"`
	UpdatedAt   *time.Time        `json:"updatedAt,omitempty"`
}

type reminderRecord struct {
	ID          string            `json:"id"`
	PetID       string            `json:"petId"`
	DisplayName string            `json:"displayName"`
	Notes       string            `json:"notes,omitempty"`
	RemindAt    *time.Time        `json:"remindAt,omitempty"`
	Recurrence  *recurrenceRecord `json:"recurrence,omitempty"`
	CreatedAt   time.Time         `json:"createdAt"`
	UpdatedAt   *time.Time        `json:"updatedAt,omitempty"`
}

type recurrenceRecord struct {
	Frequency      string     `json:"frequency"`
	Interval       int        `json:"interval"`
	NextOccurrence *time.Time `json:"nextOccurrence,omitempty"`
	EndDate        *time.Time `json:"endDate,omitempty"`
}

func toPetRecord(p pets.Pet) petRecord {
	return petRecord{
		ID:          p.ID,
		DisplayName: p.Name,
		Notes:       p.Notes,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   optionalTime(p.UpdatedAt),
		ArchivedAt:  p.ArchivedAt,
	}
}

func (rec petRecord) toDomain() pets.Pet {
	return pets.Pet{
		ID:         rec.ID,
		Name:       rec.DisplayName,
		Notes:      rec.Notes,
		CreatedAt:  rec.CreatedAt,
		UpdatedAt:  timeOrFallback(rec.UpdatedAt, rec.CreatedAt),
		ArchivedAt: rec.ArchivedAt,
	}
}

func toActivityRecord(a activities.Activity) activityRecord {
	return activityRecord{
		ID:          a.ID,
		PetID:       a.PetID,
		DisplayName: a.Name,
		Notes:       a.Notes,
		OccurredAt:  a.OccurredAt,
		Recurrence:  toRecurrenceRecord(a.Recurrence),
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   optionalTime(a.UpdatedAt),
	}
}

func (rec activityRecord) toDomain() activities.Activity {
	return activities.Activity{
		ID:         rec.ID,
		PetID:      rec.PetID,
		Name:       rec.DisplayName,
		Notes:      rec.Notes,
		OccurredAt: rec.OccurredAt,
		Recurrence: rec.Recurrence.toDomain(),
		CreatedAt:  rec.CreatedAt,
		UpdatedAt:  timeOrFallback(rec.UpdatedAt, rec.CreatedAt),
	}
}

func toReminderRecord(r reminders.Reminder) reminderRecord {
	return reminderRecord{
		ID:          r.ID,
		PetID:       r.PetID,
		DisplayName: r.Name,
		Notes:       r.Notes,
		RemindAt:    r.RemindAt,
		Recurrence:  toRecurrenceRecord(r.Recurrence),
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   optionalTime(r.UpdatedAt),
	}
}

func (rec reminderRecord) toDomain() reminders.Reminder {
	return reminders.Reminder{
		ID:         rec.ID,
		PetID:      rec.PetID,
		Name:       rec.DisplayName,
		Notes:      rec.Notes,
		RemindAt:   rec.RemindAt,
		Recurrence: rec.Recurrence.toDomain(),
		CreatedAt:  rec.CreatedAt,
		UpdatedAt:  timeOrFallback(rec.UpdatedAt, rec.CreatedAt),
	}
}

func toRecurrenceRecord(info *recurrence.Info) *recurrenceRecord {
	if info == nil {
		return nil
	}
	return &recurrenceRecord{
		Frequency:      string(info.Frequency),
		Interval:       info.Interval,
		NextOccurrence: info.NextAt,
		EndDate:        info.EndAt,
	}
}

func (rec *recurrenceRecord) toDomain() *recurrence.Info {
	if rec == nil {
		return nil
	}
	freq, _ := recurrence.ParseFrequency(rec.Frequency)
	info := recurrence.Info{
		Frequency: freq,
		Interval:  rec.Interval,
		NextAt:    rec.NextOccurrence,
		EndAt:     rec.EndDate,
	}.Normalize()
	return &info
}

func optionalTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

func timeOrFallback(t *time.Time, fallback time.Time) time.Time {
	if t == nil {
		return fallback
	}
	return *t
}
