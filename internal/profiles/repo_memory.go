package profiles

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryRepo is an in-memory implementation of Repo.
type MemoryRepo struct {
	mu   sync.RWMutex
	data map[string]Profile
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{data: make(map[string]Profile)}
}

// Upsert inserts or refreshes a profile, reporting whether it was new.
func (r *MemoryRepo) Upsert(ctx context.Context, p Profile) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.data[p.ID]
	if ok {
		existing.Email = p.Email
		existing.Name = p.Name
		existing.Picture = p.Picture
		existing.UpdatedAt = time.Now().UTC()
		r.data[p.ID] = existing
		return false, nil
	}

	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now
	r.data[p.ID] = p
	return true, nil
}

// GetByID returns a profile by user ID.
func (r *MemoryRepo) GetByID(ctx context.Context, userId string) (Profile, error) {
	if err := ctx.Err(); err != nil {
		return Profile{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.data[userId]
	if !ok {
		return Profile{}, ErrNotFound
	}
	return p, nil
}

// SetDailyReminders toggles the reminder opt-in flag.
func (r *MemoryRepo) SetDailyReminders(ctx context.Context, userId string, enabled bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.data[userId]
	if !ok {
		return ErrNotFound
	}
	p.DailyReminders = enabled
	p.UpdatedAt = time.Now().UTC()
	r.data[userId] = p
	return nil
}

// SetSkipUntil records the date through which reminders are suppressed.
func (r *MemoryRepo) SetSkipUntil(ctx context.Context, userId string, until time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.data[userId]
	if !ok {
		return ErrNotFound
	}
	p.SkipUntil = &until
	p.UpdatedAt = time.Now().UTC()
	r.data[userId] = p
	return nil
}

// ListReminderOptIns returns all profiles with daily reminders enabled.
func (r *MemoryRepo) ListReminderOptIns(ctx context.Context) ([]Profile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []Profile{}
	for _, p := range r.data {
		if p.DailyReminders {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
