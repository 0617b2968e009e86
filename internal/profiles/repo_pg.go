package profiles

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// PGRepo is a Postgres implementation of Repo.
type PGRepo struct {
	DB *sql.DB
}

const profileColumns = "id, email, name, picture, daily_reminders, skip_until, created_at, updated_at"

// Upsert inserts or refreshes a profile, reporting whether it was new.
func (r *PGRepo) Upsert(ctx context.Context, p Profile) (bool, error) {
	const q = `
		INSERT INTO profiles (id, email, name, picture)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE
		SET email = EXCLUDED.email,
		    name = EXCLUDED.name,
		    picture = EXCLUDED.picture,
		    updated_at = now()
		RETURNING (xmax = 0) AS inserted`
	var inserted bool
	if err := r.DB.QueryRowContext(ctx, q, p.ID, p.Email, p.Name, p.Picture).Scan(&inserted); err != nil {
		return false, fmt.Errorf("upsert profile: %w", err)
	}
	return inserted, nil
}

// GetByID returns a profile by user ID.
func (r *PGRepo) GetByID(ctx context.Context, userId string) (Profile, error) {
	q := fmt.Sprintf(`SELECT %s FROM profiles WHERE id = $1`, profileColumns)
	row := r.DB.QueryRowContext(ctx, q, userId)

	var p Profile
	var skipUntil sql.NullTime
	err := row.Scan(&p.ID, &p.Email, &p.Name, &p.Picture, &p.DailyReminders, &skipUntil, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Profile{}, ErrNotFound
	}
	if err != nil {
		return Profile{}, fmt.Errorf("scan profile: %w", err)
	}
	if skipUntil.Valid {
		p.SkipUntil = &skipUntil.Time
	}
	return p, nil
}

// SetDailyReminders toggles the reminder opt-in flag.
func (r *PGRepo) SetDailyReminders(ctx context.Context, userId string, enabled bool) error {
	const q = `UPDATE profiles SET daily_reminders = $2, updated_at = now() WHERE id = $1`
	res, err := r.DB.ExecContext(ctx, q, userId, enabled)
	if err != nil {
		return fmt.Errorf("update daily_reminders: %w", err)
	}
	return requireRow(res)
}

// SetSkipUntil records the date through which reminders are suppressed.
func (r *PGRepo) SetSkipUntil(ctx context.Context, userId string, until time.Time) error {
	const q = `UPDATE profiles SET skip_until = $2, updated_at = now() WHERE id = $1`
	res, err := r.DB.ExecContext(ctx, q, userId, until)
	if err != nil {
		return fmt.Errorf("update skip_until: %w", err)
	}
	return requireRow(res)
}

// ListReminderOptIns returns all profiles with daily reminders enabled.
func (r *PGRepo) ListReminderOptIns(ctx context.Context) ([]Profile, error) {
	q := fmt.Sprintf(`SELECT %s FROM profiles WHERE daily_reminders = TRUE ORDER BY id`, profileColumns)
	rows, err := r.DB.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list reminder opt-ins: %w", err)
	}
	defer rows.Close()

	out := []Profile{}
	for rows.Next() {
		var p Profile
		var skipUntil sql.NullTime
		if err := rows.Scan(&p.ID, &p.Email, &p.Name, &p.Picture, &p.DailyReminders, &skipUntil, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan profile: %w", err)
		}
		if skipUntil.Valid {
			p.SkipUntil = &skipUntil.Time
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
