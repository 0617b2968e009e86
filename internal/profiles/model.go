package profiles

import "time"

// Profile is a registered user's account record. Guests never get one.
type Profile struct {
	ID             string
	Email          string
	Name           string
	Picture        string
	DailyReminders bool
	SkipUntil      *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// WantsReminderOn reports whether this profile should receive the daily
// reminder on the given day. Opt-in is required and a pending skip marker
// suppresses the send.
func (p Profile) WantsReminderOn(day time.Time) bool {
	if !p.DailyReminders {
		return false
	}
	if p.SkipUntil != nil && !day.After(truncateToDay(*p.SkipUntil)) {
		return false
	}
	return true
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
