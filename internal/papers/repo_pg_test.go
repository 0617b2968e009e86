package papers

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"practice-backend/internal/questions"
)

func samplePaper(t *testing.T) TestPaper {
	t.Helper()
	now := time.Now().UTC()
	return TestPaper{
		ID:            "paper-1",
		UserID:        "google:1",
		Title:         "Medium Mcq Test",
		Difficulty:    "medium",
		Type:          "mcq",
		QuestionCount: 1,
		Questions: []questions.Question{{
			ID:            "1",
			Question:      "What is 2+2?",
			Type:          "mcq",
			Options:       []string{"3", "4", "5", "6"},
			CorrectAnswer: "4",
			Points:        1,
		}},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestPGRepoCreateMarshalsJSON(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	paper := samplePaper(t)

	mock.ExpectExec("INSERT INTO test_papers").
		WithArgs(
			paper.ID,
			paper.UserID,
			paper.Title,
			paper.Difficulty,
			paper.Type,
			paper.QuestionCount,
			sqlmock.AnyArg(), // questions
			sqlmock.AnyArg(), // source_documents
			paper.CreatedAt,
			paper.UpdatedAt,
		).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.Create(context.Background(), paper); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoGetByIDScansJSON(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	paper := samplePaper(t)

	questionsJSON, err := json.Marshal(paper.Questions)
	if err != nil {
		t.Fatalf("marshal questions: %v", err)
	}

	rows := sqlmock.NewRows([]string{
		"id", "user_id", "title", "difficulty", "question_type",
		"question_count", "questions", "source_documents", "created_at", "updated_at",
	}).AddRow(
		paper.ID, paper.UserID, paper.Title, paper.Difficulty, paper.Type,
		paper.QuestionCount, questionsJSON, []byte(`[]`), paper.CreatedAt, paper.UpdatedAt,
	)

	mock.ExpectQuery("SELECT .* FROM test_papers WHERE id").
		WithArgs(paper.ID, paper.UserID).
		WillReturnRows(rows)

	got, err := repo.GetByID(context.Background(), paper.UserID, paper.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if len(got.Questions) != 1 || got.Questions[0].CorrectAnswer != "4" {
		t.Fatalf("unexpected questions: %+v", got.Questions)
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

	mock.ExpectQuery("SELECT .* FROM test_papers WHERE id").
		WithArgs("missing", "google:1").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	if _, err := repo.GetByID(context.Background(), "google:1", "missing"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoUpdateMissingPaper(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	paper := samplePaper(t)

	mock.ExpectExec("UPDATE test_papers").
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.Update(context.Background(), paper); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}
