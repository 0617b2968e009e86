package profiles

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestPGRepoUpsertReportsInsert(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	profile := Profile{
		ID:      "google:123",
		Email:   "user@example.com",
		Name:    "Asha",
		Picture: "https://example.com/p.png",
	}

	mock.ExpectQuery("INSERT INTO profiles").
		WithArgs(profile.ID, profile.Email, profile.Name, profile.Picture).
		WillReturnRows(sqlmock.NewRows([]string{"inserted"}).AddRow(true))

	inserted, err := repo.Upsert(context.Background(), profile)
	if err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if !inserted {
		t.Fatal("expected inserted=true for a fresh row")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoGetByIDNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}

	mock.ExpectQuery("SELECT .* FROM profiles WHERE id").
		WithArgs("google:missing").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "name", "picture", "daily_reminders", "skip_until", "created_at", "updated_at"}))

	if _, err := repo.GetByID(context.Background(), "google:missing"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoSetDailyRemindersMissingUser(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}

	mock.ExpectExec("UPDATE profiles SET daily_reminders").
		WithArgs("google:missing", true).
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.SetDailyReminders(context.Background(), "google:missing", true); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoListReminderOptIns(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	now := time.Now().UTC()

	rows := sqlmock.NewRows([]string{"id", "email", "name", "picture", "daily_reminders", "skip_until", "created_at", "updated_at"}).
		AddRow("google:1", "a@test", "A", "", true, nil, now, now).
		AddRow("google:2", "b@test", "B", "", true, now, now, now)

	mock.ExpectQuery("SELECT .* FROM profiles WHERE daily_reminders").
		WillReturnRows(rows)

	got, err := repo.ListReminderOptIns(context.Background())
	if err != nil {
		t.Fatalf("ListReminderOptIns: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 profiles, got %d", len(got))
	}
	if got[0].SkipUntil != nil {
		t.Fatal("first profile should have no skip date")
	}
	if got[1].SkipUntil == nil {
		t.Fatal("second profile should carry its skip date")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}
