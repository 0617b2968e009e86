package reminders

import (
	"context"
	"errors"
	"testing"
	"time"

	"practice-backend/internal/mail"
	"practice-backend/internal/profiles"
)

type recordingMail struct {
	sent    []mail.Message
	failFor map[string]error
}

func (m *recordingMail) Send(ctx context.Context, msg mail.Message) error {
	if err, ok := m.failFor[msg.To]; ok {
		return err
	}
	m.sent = append(m.sent, msg)
	return nil
}

func seedProfiles(t *testing.T, svc *profiles.Service, optIns ...string) {
	t.Helper()
	ctx := context.Background()
	for _, id := range optIns {
		if _, _, err := svc.EnsureProfile(ctx, id, id+"@test", "User "+id, ""); err != nil {
			t.Fatalf("ensure %s: %v", id, err)
		}
		if err := svc.SetDailyReminders(ctx, id, true); err != nil {
			t.Fatalf("opt in %s: %v", id, err)
		}
	}
}

func TestSendDailyRemindersToOptIns(t *testing.T) {
	profileSvc := profiles.NewService(profiles.NewMemoryRepo())
	seedProfiles(t, profileSvc, "google:1", "google:2")

	mailer := &recordingMail{}
	svc := NewService(profileSvc, mailer, "https://app.example.com")

	results, err := svc.SendDailyReminders(context.Background())
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	for _, r := range results {
		if !r.Success {
			t.Fatalf("expected success for %s, got error %q", r.UserID, r.Error)
		}
	}
	if len(mailer.sent) != 2 {
		t.Fatalf("expected 2 emails, got %d", len(mailer.sent))
	}
	if mailer.sent[0].Subject != mail.DailyReminderSubject {
		t.Fatalf("unexpected subject %q", mailer.sent[0].Subject)
	}
}

func TestSendDailyRemindersIsolatesFailures(t *testing.T) {
	profileSvc := profiles.NewService(profiles.NewMemoryRepo())
	seedProfiles(t, profileSvc, "google:1", "google:2")

	mailer := &recordingMail{failFor: map[string]error{
		"google:1@test": errors.New("mailbox full"),
	}}
	svc := NewService(profileSvc, mailer, "https://app.example.com")

	results, err := svc.SendDailyReminders(context.Background())
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}

	byUser := map[string]UserResult{}
	for _, r := range results {
		byUser[r.UserID] = r
	}
	if byUser["google:1"].Success {
		t.Fatal("google:1 should have failed")
	}
	if byUser["google:1"].Error == "" {
		t.Fatal("failed result should carry the error")
	}
	if !byUser["google:2"].Success {
		t.Fatal("google:2 should still receive its reminder")
	}
}

func TestSendDailyRemindersSkipsSkippedUsers(t *testing.T) {
	profileSvc := profiles.NewService(profiles.NewMemoryRepo())
	seedProfiles(t, profileSvc, "google:1", "google:2")

	if err := profileSvc.SkipToday(context.Background(), "google:2", time.Now().UTC()); err != nil {
		t.Fatalf("skip: %v", err)
	}

	mailer := &recordingMail{}
	svc := NewService(profileSvc, mailer, "https://app.example.com")

	results, err := svc.SendDailyReminders(context.Background())
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if len(results) != 1 || results[0].UserID != "google:1" {
		t.Fatalf("expected only google:1, got %+v", results)
	}
}

func TestSendWelcome(t *testing.T) {
	profileSvc := profiles.NewService(profiles.NewMemoryRepo())
	mailer := &recordingMail{}
	svc := NewService(profileSvc, mailer, "https://app.example.com")

	if err := svc.SendWelcome(context.Background(), "new@user.test", "New User"); err != nil {
		t.Fatalf("welcome: %v", err)
	}
	if len(mailer.sent) != 1 {
		t.Fatalf("expected 1 email, got %d", len(mailer.sent))
	}
	if mailer.sent[0].Subject != mail.WelcomeSubject {
		t.Fatalf("unexpected subject %q", mailer.sent[0].Subject)
	}
}
