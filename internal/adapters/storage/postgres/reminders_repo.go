package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"pet-care-log/internal/domain/reminders"
)

type RemindersRepo struct {
	db *sql.DB
}

func NewRemindersRepo(db *sql.DB) *RemindersRepo {
	return &RemindersRepo{db: db}
}

func (r *RemindersRepo) Create(ctx context.Context, rem reminders.Reminder) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	ok, err := petExists(ctx, tx, rem.PetID)
	if err != nil {
		return err
	}
	if !ok {
		return reminders.ErrPetNotFound
	}

	rec := recurrenceColumns(rem.Recurrence)
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO reminders (
			id, pet_id, name, notes, remind_at,
			recur_frequency, recur_interval, recur_next_at, recur_end_at,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
	`,
		rem.ID,
		rem.PetID,
		rem.Name,
		rem.Notes,
		toNullTime(rem.RemindAt),
		rec.frequency,
		rec.interval,
		rec.nextAt,
		rec.endAt,
		rem.CreatedAt,
		rem.UpdatedAt,
	); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *RemindersRepo) GetByID(ctx context.Context, id string) (reminders.Reminder, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return reminders.Reminder{}, reminders.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, selectReminder+` WHERE id = $1`, id)
	rem, err := scanReminder(row)
	if errors.Is(err, sql.ErrNoRows) {
		return reminders.Reminder{}, reminders.ErrNotFound
	}
	return rem, err
}

func (r *RemindersRepo) List(ctx context.Context) ([]reminders.Reminder, error) {
	return r.list(ctx, selectReminder+` ORDER BY created_at, id`)
}

func (r *RemindersRepo) ListByPet(ctx context.Context, petID string) ([]reminders.Reminder, error) {
	return r.list(ctx, selectReminder+` WHERE pet_id = $1 ORDER BY created_at, id`, petID)
}

func (r *RemindersRepo) list(ctx context.Context, query string, args ...any) ([]reminders.Reminder, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]reminders.Reminder, 0)
	for rows.Next() {
		rem, err := scanReminder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rem)
	}
	return out, rows.Err()
}

func (r *RemindersRepo) Update(ctx context.Context, rem reminders.Reminder) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	// El PetID puede haber cambiado: misma regla que en Create.
	ok, err := petExists(ctx, tx, rem.PetID)
	if err != nil {
		return err
	}
	if !ok {
		return reminders.ErrPetNotFound
	}

	rec := recurrenceColumns(rem.Recurrence)
	res, err := tx.ExecContext(ctx, `
		UPDATE reminders
		SET pet_id = $2, name = $3, notes = $4, remind_at = $5,
			recur_frequency = $6, recur_interval = $7, recur_next_at = $8, recur_end_at = $9,
			updated_at = $10
		WHERE id = $1
	`,
		rem.ID,
		rem.PetID,
		rem.Name,
		rem.Notes,
		toNullTime(rem.RemindAt),
		rec.frequency,
		rec.interval,
		rec.nextAt,
		rec.endAt,
		rem.UpdatedAt,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return reminders.ErrNotFound
	}

	return tx.Commit()
}

func (r *RemindersRepo) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM reminders WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

const selectReminder = `
	SELECT id, pet_id, name, notes, remind_at,
		recur_frequency, recur_interval, recur_next_at, recur_end_at,
		created_at, updated_at
	FROM reminders`

func scanReminder(row rowScanner) (reminders.Reminder, error) {
	var rem reminders.Reminder
	var remindAt sql.NullTime
	var rec scannedRecurrence
	if err := row.Scan(
		&rem.ID,
		&rem.PetID,
		&rem.Name,
		&rem.Notes,
		&remindAt,
		&rec.frequency,
		&rec.interval,
		&rec.nextAt,
		&rec.endAt,
		&rem.CreatedAt,
		&rem.UpdatedAt,
	); err != nil {
		return reminders.Reminder{}, err
	}
	rem.RemindAt = fromNullTime(remindAt)
	rem.Recurrence = rec.toInfo()
	return rem, nil
}
