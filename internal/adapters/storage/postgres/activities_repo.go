package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"pet-care-log/internal/domain/activities"
	"pet-care-log/internal/domain/recurrence"
)

type ActivitiesRepo struct {
	db *sql.DB
}

func NewActivitiesRepo(db *sql.DB) *ActivitiesRepo {
	return &ActivitiesRepo{db: db}
}

func (r *ActivitiesRepo) Create(ctx context.Context, a activities.Activity) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	ok, err := petExists(ctx, tx, a.PetID)
	if err != nil {
		return err
	}
	if !ok {
		return activities.ErrPetNotFound
	}

	rec := recurrenceColumns(a.Recurrence)
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO activities (
			id, pet_id, name, notes, occurred_at,
			recur_frequency, recur_interval, recur_next_at, recur_end_at,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
	`,
		a.ID,
		a.PetID,
		a.Name,
		a.Notes,
		a.OccurredAt,
		rec.frequency,
		rec.interval,
		rec.nextAt,
		rec.endAt,
		a.CreatedAt,
		a.UpdatedAt,
	); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *ActivitiesRepo) GetByID(ctx context.Context, id string) (activities.Activity, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return activities.Activity{}, activities.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, selectActivity+` WHERE id = $1`, id)
	a, err := scanActivity(row)
	if errors.Is(err, sql.ErrNoRows) {
		return activities.Activity{}, activities.ErrNotFound
	}
	return a, err
}

func (r *ActivitiesRepo) List(ctx context.Context) ([]activities.Activity, error) {
	return r.list(ctx, selectActivity+` ORDER BY created_at, id`)
}

func (r *ActivitiesRepo) ListByPet(ctx context.Context, petID string) ([]activities.Activity, error) {
	return r.list(ctx, selectActivity+` WHERE pet_id = $1 ORDER BY created_at, id`, petID)
}

func (r *ActivitiesRepo) list(ctx context.Context, query string, args ...any) ([]activities.Activity, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]activities.Activity, 0)
	for rows.Next() {
		a, err := scanActivity(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *ActivitiesRepo) Update(ctx context.Context, a activities.Activity) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	// El PetID puede haber cambiado: misma regla que en Create.
	ok, err := petExists(ctx, tx, a.PetID)
	if err != nil {
		return err
	}
	if !ok {
		return activities.ErrPetNotFound
	}

	rec := recurrenceColumns(a.Recurrence)
	res, err := tx.ExecContext(ctx, `
		UPDATE activities
		SET pet_id = $2, name = $3, notes = $4, occurred_at = $5,
			recur_frequency = $6, recur_interval = $7, recur_next_at = $8, recur_end_at = $9,
			updated_at = $10
		WHERE id = $1
	`,
		a.ID,
		a.PetID,
		a.Name,
		a.Notes,
		a.OccurredAt,
		rec.frequency,
		rec.interval,
		rec.nextAt,
		rec.endAt,
		a.UpdatedAt,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return activities.ErrNotFound
	}

	return tx.Commit()
}

func (r *ActivitiesRepo) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM activities WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

const selectActivity = `
	SELECT id, pet_id, name, notes, occurred_at,
		recur_frequency, recur_interval, recur_next_at, recur_end_at,
		created_at, updated_at
	FROM activities`

func scanActivity(row rowScanner) (activities.Activity, error) {
	var a activities.Activity
	var rec scannedRecurrence
	if err := row.Scan(
		&a.ID,
		&a.PetID,
		&a.Name,
		&a.Notes,
		&a.OccurredAt,
		&rec.frequency,
		&rec.interval,
		&rec.nextAt,
		&rec.endAt,
		&a.CreatedAt,
		&a.UpdatedAt,
	); err != nil {
		return activities.Activity{}, err
	}
	a.Recurrence = rec.toInfo()
	return a, nil
}

// Columnas aplanadas de recurrencia; frequency NULL = sin recurrencia.
type scannedRecurrence struct {
	frequency sql.NullString
	interval  sql.NullInt64
	nextAt    sql.NullTime
	endAt     sql.NullTime
}

func (s scannedRecurrence) toInfo() *recurrence.Info {
	if !s.frequency.Valid {
		return nil
	}
	freq, _ := recurrence.ParseFrequency(s.frequency.String)
	info := recurrence.Info{
		Frequency: freq,
		Interval:  int(s.interval.Int64),
		NextAt:    fromNullTime(s.nextAt),
		EndAt:     fromNullTime(s.endAt),
	}.Normalize()
	return &info
}

func recurrenceColumns(info *recurrence.Info) scannedRecurrence {
	if info == nil {
		return scannedRecurrence{}
	}
	return scannedRecurrence{
		frequency: toNullString(string(info.Frequency)),
		interval:  sql.NullInt64{Int64: int64(info.Interval), Valid: true},
		nextAt:    toNullTime(info.NextAt),
		endAt:     toNullTime(info.EndAt),
	}
}
