package questions

import (
	"fmt"
	"strings"
)

// Question types supported by the generator.
const (
	TypeMCQ         = "mcq"
	TypeDescriptive = "descriptive"
)

// Difficulty levels supported by the generator.
const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

const (
	// MCQOptionCount is the required number of options per multiple choice question.
	MCQOptionCount = 4

	// MinCount and MaxCount bound the requested question count.
	MinCount = 1
	MaxCount = 20
)

// Question is a single generated test question.
type Question struct {
	ID            string   `json:"id"`
	Question      string   `json:"question"`
	Type          string   `json:"type"`
	Options       []string `json:"options,omitempty"`
	CorrectAnswer string   `json:"correctAnswer,omitempty"`
	Points        int      `json:"points"`
}

// ValidType reports whether t is a supported question type.
func ValidType(t string) bool {
	return t == TypeMCQ || t == TypeDescriptive
}

// ValidDifficulty reports whether d is a supported difficulty level.
func ValidDifficulty(d string) bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	default:
		return false
	}
}

// ValidCount reports whether n is an acceptable question count.
func ValidCount(n int) bool {
	return n >= MinCount && n <= MaxCount
}

// Validate checks a fully-formed question for structural consistency.
func (q Question) Validate() error {
	if strings.TrimSpace(q.Question) == "" {
		return fmt.Errorf("question text is empty")
	}
	if !ValidType(q.Type) {
		return fmt.Errorf("unknown question type %q", q.Type)
	}
	if q.Points <= 0 {
		return fmt.Errorf("points must be positive, got %d", q.Points)
	}
	if q.Type == TypeMCQ {
		if len(q.Options) != MCQOptionCount {
			return fmt.Errorf("mcq question needs %d options, got %d", MCQOptionCount, len(q.Options))
		}
		found := false
		for _, opt := range q.Options {
			if opt == q.CorrectAnswer {
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("correct answer %q is not among the options", q.CorrectAnswer)
		}
	}
	return nil
}
