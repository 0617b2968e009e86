package profiles

import (
	"context"
	"strings"
	"time"
)

// Service contains business logic for profiles.
type Service struct {
	Repo Repo
}

// NewService constructs a Service.
func NewService(repo Repo) *Service {
	return &Service{Repo: repo}
}

// EnsureProfile creates or refreshes the profile after a Google sign-in.
// The returned flag reports whether this was the user's first sign-in.
func (s *Service) EnsureProfile(ctx context.Context, userId, email, name, picture string) (Profile, bool, error) {
	if strings.TrimSpace(userId) == "" || strings.TrimSpace(email) == "" {
		return Profile{}, false, ErrInvalidInput
	}

	created, err := s.Repo.Upsert(ctx, Profile{
		ID:      userId,
		Email:   email,
		Name:    name,
		Picture: picture,
	})
	if err != nil {
		return Profile{}, false, err
	}

	p, err := s.Repo.GetByID(ctx, userId)
	if err != nil {
		return Profile{}, false, err
	}
	return p, created, nil
}

// Get returns the profile for a user.
func (s *Service) Get(ctx context.Context, userId string) (Profile, error) {
	if strings.TrimSpace(userId) == "" {
		return Profile{}, ErrInvalidInput
	}
	return s.Repo.GetByID(ctx, userId)
}

// SetDailyReminders toggles the daily reminder opt-in.
func (s *Service) SetDailyReminders(ctx context.Context, userId string, enabled bool) error {
	if strings.TrimSpace(userId) == "" {
		return ErrInvalidInput
	}
	return s.Repo.SetDailyReminders(ctx, userId, enabled)
}

// SkipToday suppresses the reminder for the rest of today.
func (s *Service) SkipToday(ctx context.Context, userId string, now time.Time) error {
	if strings.TrimSpace(userId) == "" {
		return ErrInvalidInput
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return s.Repo.SetSkipUntil(ctx, userId, today)
}

// ReminderRecipients returns profiles that should receive the daily
// reminder on the given day.
func (s *Service) ReminderRecipients(ctx context.Context, day time.Time) ([]Profile, error) {
	optIns, err := s.Repo.ListReminderOptIns(ctx)
	if err != nil {
		return nil, err
	}
	day = time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)

	out := make([]Profile, 0, len(optIns))
	for _, p := range optIns {
		if p.WantsReminderOn(day) {
			out = append(out, p)
		}
	}
	return out, nil
}
