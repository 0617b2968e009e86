package papers

import (
	"time"

	"practice-backend/internal/questions"
)

// PaperResponse is the outward-facing representation of a test paper.
type PaperResponse struct {
	ID              string               `json:"id"`
	Title           string               `json:"title"`
	Difficulty      string               `json:"difficulty"`
	Type            string               `json:"type"`
	QuestionCount   int                  `json:"questionCount"`
	Questions       []questions.Question `json:"questions"`
	SourceDocuments []SourceDocument     `json:"sourceDocuments"`
	CreatedAt       time.Time            `json:"createdAt"`
	UpdatedAt       time.Time            `json:"updatedAt"`
}

// PaperSummary omits the question bodies for list endpoints.
type PaperSummary struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Difficulty    string    `json:"difficulty"`
	Type          string    `json:"type"`
	QuestionCount int       `json:"questionCount"`
	CreatedAt     time.Time `json:"createdAt"`
}

// SubmissionResponse is the outward-facing representation of a scored
// submission.
type SubmissionResponse struct {
	ID        string            `json:"id"`
	PaperID   string            `json:"paperId"`
	Answers   map[string]string `json:"answers"`
	Score     int               `json:"score"`
	MaxScore  int               `json:"maxScore"`
	CreatedAt time.Time         `json:"createdAt"`
}

func toPaperResponse(p TestPaper) PaperResponse {
	qs := p.Questions
	if qs == nil {
		qs = []questions.Question{}
	}
	docs := p.SourceDocuments
	if docs == nil {
		docs = []SourceDocument{}
	}
	return PaperResponse{
		ID:              p.ID,
		Title:           p.Title,
		Difficulty:      p.Difficulty,
		Type:            p.Type,
		QuestionCount:   p.QuestionCount,
		Questions:       qs,
		SourceDocuments: docs,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}

func toPaperSummary(p TestPaper) PaperSummary {
	return PaperSummary{
		ID:            p.ID,
		Title:         p.Title,
		Difficulty:    p.Difficulty,
		Type:          p.Type,
		QuestionCount: p.QuestionCount,
		CreatedAt:     p.CreatedAt,
	}
}

func toSubmissionResponse(s Submission) SubmissionResponse {
	return SubmissionResponse{
		ID:        s.ID,
		PaperID:   s.PaperID,
		Answers:   s.Answers,
		Score:     s.Score,
		MaxScore:  s.MaxScore,
		CreatedAt: s.CreatedAt,
	}
}
