package profiles

import (
	"context"
	"testing"
	"time"
)

func TestEnsureProfileReportsFirstSignIn(t *testing.T) {
	svc := NewService(NewMemoryRepo())

	_, created, err := svc.EnsureProfile(context.Background(), "google:1", "a@b.test", "A", "")
	if err != nil {
		t.Fatalf("ensure: %v", err)
	}
	if !created {
		t.Fatal("first sign-in should report created")
	}

	_, created, err = svc.EnsureProfile(context.Background(), "google:1", "a@b.test", "A2", "")
	if err != nil {
		t.Fatalf("ensure again: %v", err)
	}
	if created {
		t.Fatal("second sign-in should not report created")
	}

	p, err := svc.Get(context.Background(), "google:1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if p.Name != "A2" {
		t.Fatalf("upsert should refresh name, got %q", p.Name)
	}
}

func TestReminderRecipientsFiltersOptOutAndSkips(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	ctx := context.Background()

	for _, id := range []string{"google:1", "google:2", "google:3"} {
		if _, _, err := svc.EnsureProfile(ctx, id, id+"@test", "", ""); err != nil {
			t.Fatalf("ensure %s: %v", id, err)
		}
	}

	if err := svc.SetDailyReminders(ctx, "google:1", true); err != nil {
		t.Fatalf("opt in 1: %v", err)
	}
	if err := svc.SetDailyReminders(ctx, "google:2", true); err != nil {
		t.Fatalf("opt in 2: %v", err)
	}

	now := time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC)
	if err := svc.SkipToday(ctx, "google:2", now); err != nil {
		t.Fatalf("skip today: %v", err)
	}

	got, err := svc.ReminderRecipients(ctx, now)
	if err != nil {
		t.Fatalf("recipients: %v", err)
	}
	if len(got) != 1 || got[0].ID != "google:1" {
		t.Fatalf("expected only google:1, got %+v", got)
	}

	// The skip only covers that day.
	nextDay := now.AddDate(0, 0, 1)
	got, err = svc.ReminderRecipients(ctx, nextDay)
	if err != nil {
		t.Fatalf("recipients next day: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected both recipients next day, got %d", len(got))
	}
}

func TestSkipTodayUnknownUser(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	err := svc.SkipToday(context.Background(), "google:missing", time.Now().UTC())
	if err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
