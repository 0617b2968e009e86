package papers

import (
	"time"

	"practice-backend/internal/questions"
)

// SourceDocument references an uploaded file used to generate a paper.
type SourceDocument struct {
	Path string `json:"path"`
	Name string `json:"name"`
	Type string `json:"type"`
	Size int64  `json:"size"`
}

// TestPaper is a generated set of questions owned by a user.
// QuestionCount always equals len(Questions).
type TestPaper struct {
	ID              string
	UserID          string
	Title           string
	Difficulty      string
	Type            string
	QuestionCount   int
	Questions       []questions.Question
	SourceDocuments []SourceDocument
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Submission records a user's answers to a paper with auto-scored results.
type Submission struct {
	ID        string
	PaperID   string
	UserID    string
	Answers   map[string]string
	Score     int
	MaxScore  int
	CreatedAt time.Time
}
