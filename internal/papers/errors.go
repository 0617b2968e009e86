package papers

import "errors"

var (
	ErrNotFound             = errors.New("test paper not found")
	ErrInvalidParams        = errors.New("missing required parameters: prompt, difficulty, type, or questionCount")
	ErrInvalidQuestionCount = errors.New("question count must be between 1 and 20")
	ErrInvalidQuestions     = errors.New("the AI service returned invalid question data")
	ErrTooManyDocuments     = errors.New("too many source documents")
)
