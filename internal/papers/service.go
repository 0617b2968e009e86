package papers

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"practice-backend/internal/ingest"
	"practice-backend/internal/llm"
	"practice-backend/internal/questions"
	"practice-backend/internal/shared/metrics"
	"practice-backend/internal/shared/telemetry"
)

// GenerateRequest carries everything needed to generate or modify a paper.
type GenerateRequest struct {
	Prompt          string
	Title           string
	Difficulty      string
	Type            string
	QuestionCount   int
	SourceDocuments []SourceDocument
}

// GenerateResult is the pipeline output plus bookkeeping for callers.
type GenerateResult struct {
	Paper          TestPaper
	Modification   bool
	UsedFallback   bool
	ProcessedPDFs  int
	ProcessedImgs  int
	ExtractedChars int
}

// Service contains the generation pipeline and paper CRUD.
type Service struct {
	Repo      Repo
	Processor *ingest.Processor
	LLM       llm.Client
}

// Generate runs the full pipeline: validate, classify, process documents,
// prompt the model, normalize the response, and persist the paper.
func (s *Service) Generate(ctx context.Context, userId string, req GenerateRequest) (GenerateResult, error) {
	if strings.TrimSpace(req.Prompt) == "" ||
		strings.TrimSpace(req.Difficulty) == "" ||
		strings.TrimSpace(req.Type) == "" ||
		req.QuestionCount == 0 {
		return GenerateResult{}, ErrInvalidParams
	}
	if !questions.ValidDifficulty(req.Difficulty) || !questions.ValidType(req.Type) {
		return GenerateResult{}, ErrInvalidParams
	}
	if !questions.ValidCount(req.QuestionCount) {
		return GenerateResult{}, ErrInvalidQuestionCount
	}

	metrics.IncGenerationStarted()
	start := time.Now()

	isModification := llm.IsModificationRequest(req.Prompt)

	processed, err := s.Processor.Process(ctx, toIngestDocuments(req.SourceDocuments))
	if err != nil {
		metrics.IncGenerationFailed()
		return GenerateResult{}, err
	}

	fullContext := llm.ComposeContext(req.Prompt, processed.ExtractedText, len(processed.Images))

	var prompt string
	if isModification {
		prompt = llm.ModificationPrompt(fullContext, req.Type)
	} else {
		prompt = llm.GenerationPrompt(fullContext, req.Difficulty, req.Type, req.QuestionCount)
	}

	raw, err := s.LLM.Generate(ctx, llm.GenerateInput{
		Prompt: prompt,
		Images: toLLMImages(processed.Images),
	})
	if err != nil {
		metrics.IncGenerationFailed()
		return GenerateResult{}, err
	}

	qs, parsed := questions.Parse(raw)
	usedFallback := !parsed
	if !parsed {
		telemetry.Error("papers.parse_failed", map[string]any{
			"user_id":  userId,
			"response": truncateForLog(raw),
		})
		metrics.IncGenerationFallback()
		qs = questions.FallbackSet(req.QuestionCount, req.Difficulty, req.Type)
	} else {
		qs = questions.Normalize(qs, req.Difficulty, req.Type)
	}

	// Modification requests keep whatever count the model returned.
	if !isModification {
		qs = questions.Reconcile(qs, req.QuestionCount, req.Difficulty, req.Type)
	}

	if len(qs) == 0 {
		metrics.IncGenerationFailed()
		return GenerateResult{}, ErrInvalidQuestions
	}

	now := time.Now().UTC()
	paper := TestPaper{
		ID:              uuid.NewString(),
		UserID:          userId,
		Title:           paperTitle(req.Title, req.Difficulty, req.Type, now),
		Difficulty:      req.Difficulty,
		Type:            req.Type,
		QuestionCount:   len(qs),
		Questions:       qs,
		SourceDocuments: req.SourceDocuments,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.Repo.Create(ctx, paper); err != nil {
		metrics.IncGenerationFailed()
		return GenerateResult{}, err
	}

	metrics.IncGenerationCompleted()
	metrics.ObserveGenerationDurationMs(float64(time.Since(start).Milliseconds()))

	pdfCount, imgCount := countByType(req.SourceDocuments)
	telemetry.Info("papers.generated", map[string]any{
		"paper_id":        paper.ID,
		"user_id":         userId,
		"question_count":  len(qs),
		"modification":    isModification,
		"used_fallback":   usedFallback,
		"pdf_count":       pdfCount,
		"image_count":     imgCount,
		"extracted_chars": len(processed.ExtractedText),
		"duration_ms":     time.Since(start).Milliseconds(),
	})

	return GenerateResult{
		Paper:          paper,
		Modification:   isModification,
		UsedFallback:   usedFallback,
		ProcessedPDFs:  pdfCount,
		ProcessedImgs:  imgCount,
		ExtractedChars: len(processed.ExtractedText),
	}, nil
}

// Get returns one paper by ID for a user.
func (s *Service) Get(ctx context.Context, userId, paperID string) (TestPaper, error) {
	if userId == "" || paperID == "" {
		return TestPaper{}, ErrNotFound
	}
	return s.Repo.GetByID(ctx, userId, paperID)
}

// List returns a user's papers, newest first.
func (s *Service) List(ctx context.Context, userId string, limit, offset int) ([]TestPaper, error) {
	return s.Repo.ListByUser(ctx, userId, limit, offset)
}

// UpdateRequest carries a manual edit of a stored paper.
type UpdateRequest struct {
	Title     string
	Questions []questions.Question
}

// Update applies a manual edit, revalidating every question and keeping the
// stored count in sync with the question list.
func (s *Service) Update(ctx context.Context, userId, paperID string, req UpdateRequest) (TestPaper, error) {
	paper, err := s.Repo.GetByID(ctx, userId, paperID)
	if err != nil {
		return TestPaper{}, err
	}

	if strings.TrimSpace(req.Title) != "" {
		paper.Title = req.Title
	}
	if req.Questions != nil {
		if len(req.Questions) == 0 {
			return TestPaper{}, ErrInvalidQuestions
		}
		for _, q := range req.Questions {
			if !questions.ValidType(q.Type) || q.Type != paper.Type {
				return TestPaper{}, ErrInvalidQuestions
			}
			if err := q.Validate(); err != nil {
				return TestPaper{}, fmt.Errorf("%w: %s", ErrInvalidQuestions, err.Error())
			}
		}
		paper.Questions = req.Questions
		paper.QuestionCount = len(req.Questions)
	}

	paper.UpdatedAt = time.Now().UTC()
	if err := s.Repo.Update(ctx, paper); err != nil {
		return TestPaper{}, err
	}
	return paper, nil
}

// Submit scores the given answers against a paper. Multiple choice
// questions are auto-scored; descriptive answers are stored unscored.
func (s *Service) Submit(ctx context.Context, userId, paperID string, answers map[string]string) (Submission, error) {
	paper, err := s.Repo.GetByID(ctx, userId, paperID)
	if err != nil {
		return Submission{}, err
	}

	score := 0
	maxScore := 0
	for _, q := range paper.Questions {
		maxScore += q.Points
		if q.Type != questions.TypeMCQ {
			continue
		}
		if answer, ok := answers[q.ID]; ok && answer == q.CorrectAnswer {
			score += q.Points
		}
	}

	if answers == nil {
		answers = map[string]string{}
	}
	sub := Submission{
		ID:        uuid.NewString(),
		PaperID:   paper.ID,
		UserID:    userId,
		Answers:   answers,
		Score:     score,
		MaxScore:  maxScore,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.Repo.CreateSubmission(ctx, sub); err != nil {
		return Submission{}, err
	}
	return sub, nil
}

// Submissions lists a user's submissions for a paper.
func (s *Service) Submissions(ctx context.Context, userId, paperID string) ([]Submission, error) {
	if _, err := s.Repo.GetByID(ctx, userId, paperID); err != nil {
		return nil, err
	}
	return s.Repo.ListSubmissions(ctx, userId, paperID)
}

func toIngestDocuments(docs []SourceDocument) []ingest.Document {
	out := make([]ingest.Document, 0, len(docs))
	for _, d := range docs {
		out = append(out, ingest.Document{
			Path:     d.Path,
			Name:     d.Name,
			MimeType: d.Type,
			Size:     d.Size,
		})
	}
	return out
}

func toLLMImages(imgs []ingest.ImagePart) []llm.ImagePart {
	out := make([]llm.ImagePart, 0, len(imgs))
	for _, img := range imgs {
		out = append(out, llm.ImagePart{MimeType: img.MimeType, Data: img.Data})
	}
	return out
}

func countByType(docs []SourceDocument) (pdfs, images int) {
	for _, d := range docs {
		switch {
		case strings.Contains(d.Type, "pdf"):
			pdfs++
		case strings.Contains(d.Type, "image"):
			images++
		}
	}
	return pdfs, images
}

func paperTitle(title, difficulty, questionType string, now time.Time) string {
	if strings.TrimSpace(title) != "" {
		return title
	}
	label := difficulty
	if label != "" {
		label = strings.ToUpper(label[:1]) + label[1:]
	}
	return fmt.Sprintf("%s %s test - %s", label, strings.ToUpper(questionType), now.Format("Jan 2, 2006"))
}

func truncateForLog(s string) string {
	const max = 512
	if len(s) <= max {
		return s
	}
	return s[:max]
}
