package profiles

import (
	"context"
	"time"
)

// Repo defines persistence operations for profiles.
type Repo interface {
	Upsert(ctx context.Context, p Profile) (created bool, err error)
	GetByID(ctx context.Context, userId string) (Profile, error)
	SetDailyReminders(ctx context.Context, userId string, enabled bool) error
	SetSkipUntil(ctx context.Context, userId string, until time.Time) error
	ListReminderOptIns(ctx context.Context) ([]Profile, error)
}
