package papers

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"practice-backend/internal/questions"
)

// PGRepo is a Postgres implementation of Repo.
type PGRepo struct {
	DB *sql.DB
}

const paperColumns = "id, user_id, title, difficulty, question_type, question_count, questions, source_documents, created_at, updated_at"

// Create inserts a paper row.
func (r *PGRepo) Create(ctx context.Context, paper TestPaper) error {
	questionsJSON, docsJSON, err := marshalPaperJSON(paper)
	if err != nil {
		return err
	}

	const q = `
		INSERT INTO test_papers (id, user_id, title, difficulty, question_type, question_count, questions, source_documents, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err = r.DB.ExecContext(ctx, q,
		paper.ID, paper.UserID, paper.Title, paper.Difficulty, paper.Type,
		paper.QuestionCount, questionsJSON, docsJSON, paper.CreatedAt, paper.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert test paper: %w", err)
	}
	return nil
}

// GetByID returns a paper by ID for a user.
func (r *PGRepo) GetByID(ctx context.Context, userId, paperID string) (TestPaper, error) {
	q := fmt.Sprintf(`SELECT %s FROM test_papers WHERE id = $1 AND user_id = $2`, paperColumns)
	row := r.DB.QueryRowContext(ctx, q, paperID, userId)
	return scanPaper(row)
}

// ListByUser returns papers for a user, newest first.
func (r *PGRepo) ListByUser(ctx context.Context, userId string, limit, offset int) ([]TestPaper, error) {
	q := fmt.Sprintf(`
		SELECT %s FROM test_papers
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`, paperColumns)
	rows, err := r.DB.QueryContext(ctx, q, userId, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list test papers: %w", err)
	}
	defer rows.Close()

	out := []TestPaper{}
	for rows.Next() {
		paper, err := scanPaper(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, paper)
	}
	return out, rows.Err()
}

// Update replaces the mutable fields of a stored paper.
func (r *PGRepo) Update(ctx context.Context, paper TestPaper) error {
	questionsJSON, docsJSON, err := marshalPaperJSON(paper)
	if err != nil {
		return err
	}

	const q = `
		UPDATE test_papers
		SET title = $3, difficulty = $4, question_type = $5, question_count = $6,
		    questions = $7, source_documents = $8, updated_at = $9
		WHERE id = $1 AND user_id = $2`
	res, err := r.DB.ExecContext(ctx, q,
		paper.ID, paper.UserID, paper.Title, paper.Difficulty, paper.Type,
		paper.QuestionCount, questionsJSON, docsJSON, paper.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update test paper: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// CreateSubmission inserts a submission row.
func (r *PGRepo) CreateSubmission(ctx context.Context, sub Submission) error {
	answersJSON, err := json.Marshal(sub.Answers)
	if err != nil {
		return fmt.Errorf("marshal answers: %w", err)
	}

	const q = `
		INSERT INTO submissions (id, paper_id, user_id, answers, score, max_score, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err = r.DB.ExecContext(ctx, q,
		sub.ID, sub.PaperID, sub.UserID, answersJSON, sub.Score, sub.MaxScore, sub.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert submission: %w", err)
	}
	return nil
}

// ListSubmissions returns a user's submissions for a paper, newest first.
func (r *PGRepo) ListSubmissions(ctx context.Context, userId, paperID string) ([]Submission, error) {
	const q = `
		SELECT id, paper_id, user_id, answers, score, max_score, created_at
		FROM submissions
		WHERE paper_id = $1 AND user_id = $2
		ORDER BY created_at DESC`
	rows, err := r.DB.QueryContext(ctx, q, paperID, userId)
	if err != nil {
		return nil, fmt.Errorf("list submissions: %w", err)
	}
	defer rows.Close()

	out := []Submission{}
	for rows.Next() {
		var sub Submission
		var answersJSON []byte
		if err := rows.Scan(&sub.ID, &sub.PaperID, &sub.UserID, &answersJSON, &sub.Score, &sub.MaxScore, &sub.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan submission: %w", err)
		}
		if err := json.Unmarshal(answersJSON, &sub.Answers); err != nil {
			return nil, fmt.Errorf("unmarshal answers: %w", err)
		}
		out = append(out, sub)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPaper(row rowScanner) (TestPaper, error) {
	var paper TestPaper
	var questionsJSON, docsJSON []byte
	err := row.Scan(
		&paper.ID, &paper.UserID, &paper.Title, &paper.Difficulty, &paper.Type,
		&paper.QuestionCount, &questionsJSON, &docsJSON, &paper.CreatedAt, &paper.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return TestPaper{}, ErrNotFound
	}
	if err != nil {
		return TestPaper{}, fmt.Errorf("scan test paper: %w", err)
	}

	if err := json.Unmarshal(questionsJSON, &paper.Questions); err != nil {
		return TestPaper{}, fmt.Errorf("unmarshal questions: %w", err)
	}
	if len(docsJSON) > 0 {
		if err := json.Unmarshal(docsJSON, &paper.SourceDocuments); err != nil {
			return TestPaper{}, fmt.Errorf("unmarshal source documents: %w", err)
		}
	}
	return paper, nil
}

func marshalPaperJSON(paper TestPaper) ([]byte, []byte, error) {
	qs := paper.Questions
	if qs == nil {
		qs = []questions.Question{}
	}
	questionsJSON, err := json.Marshal(qs)
	if err != nil {
		return nil, nil, fmt.Errorf("marshal questions: %w", err)
	}

	docs := paper.SourceDocuments
	if docs == nil {
		docs = []SourceDocument{}
	}
	docsJSON, err := json.Marshal(docs)
	if err != nil {
		return nil, nil, fmt.Errorf("marshal source documents: %w", err)
	}
	return questionsJSON, docsJSON, nil
}
