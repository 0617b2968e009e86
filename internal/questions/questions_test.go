package questions

import (
	"strings"
	"testing"
)

func TestParseStripsCodeFences(t *testing.T) {
	raw := "```json\n[{\"id\":\"q1\",\"question\":\"What is Go?\",\"type\":\"descriptive\",\"points\":5}]\n```"
	qs, ok := Parse(raw)
	if !ok {
		t.Fatal("expected parse to succeed")
	}
	if len(qs) != 1 {
		t.Fatalf("expected 1 question, got %d", len(qs))
	}
	if qs[0].Question != "What is Go?" {
		t.Fatalf("unexpected question text %q", qs[0].Question)
	}
}

func TestParseSlicesSurroundingProse(t *testing.T) {
	raw := "Here are your questions:\n[{\"id\":\"q1\",\"question\":\"Q?\",\"type\":\"descriptive\",\"points\":5}]\nHope this helps!"
	qs, ok := Parse(raw)
	if !ok {
		t.Fatal("expected parse to succeed")
	}
	if len(qs) != 1 {
		t.Fatalf("expected 1 question, got %d", len(qs))
	}
}

func TestParseReportsMalformed(t *testing.T) {
	if _, ok := Parse("I could not generate questions, sorry."); ok {
		t.Fatal("expected parse to fail on prose without JSON")
	}
	if _, ok := Parse("[{\"id\": \"q1\", broken"); ok {
		t.Fatal("expected parse to fail on truncated JSON")
	}
}

func TestFallbackMCQShape(t *testing.T) {
	q := Fallback(0, "medium", TypeMCQ)
	if q.ID != "q1" {
		t.Fatalf("expected id q1, got %s", q.ID)
	}
	if len(q.Options) != MCQOptionCount {
		t.Fatalf("expected %d options, got %d", MCQOptionCount, len(q.Options))
	}
	if q.CorrectAnswer != q.Options[0] {
		t.Fatalf("expected first option correct, got %q", q.CorrectAnswer)
	}
	if q.Points != 1 {
		t.Fatalf("expected 1 point, got %d", q.Points)
	}
	if err := q.Validate(); err != nil {
		t.Fatalf("fallback mcq should validate: %v", err)
	}
}

func TestFallbackDescriptiveShape(t *testing.T) {
	q := Fallback(2, "hard", TypeDescriptive)
	if q.ID != "q3" {
		t.Fatalf("expected id q3, got %s", q.ID)
	}
	if len(q.Options) != 0 {
		t.Fatalf("descriptive should have no options, got %d", len(q.Options))
	}
	if q.Points != 5 {
		t.Fatalf("expected 5 points, got %d", q.Points)
	}
	if !strings.Contains(q.Question, "hard descriptive question 3") {
		t.Fatalf("unexpected question text %q", q.Question)
	}
}

func TestReconcileTruncates(t *testing.T) {
	qs := FallbackSet(7, "easy", TypeMCQ)
	got := Reconcile(qs, 5, "easy", TypeMCQ)
	if len(got) != 5 {
		t.Fatalf("expected 5 questions, got %d", len(got))
	}
}

func TestReconcilePads(t *testing.T) {
	qs := []Question{{ID: "q1", Question: "Real question?", Type: TypeDescriptive, Points: 5}}
	got := Reconcile(qs, 3, "medium", TypeDescriptive)
	if len(got) != 3 {
		t.Fatalf("expected 3 questions, got %d", len(got))
	}
	if got[0].Question != "Real question?" {
		t.Fatal("reconcile should keep existing questions first")
	}
	if got[1].ID != "q2" || got[2].ID != "q3" {
		t.Fatalf("padded ids should continue sequence, got %s %s", got[1].ID, got[2].ID)
	}
}

func TestValidateRejectsBadMCQ(t *testing.T) {
	q := Question{
		ID:            "q1",
		Question:      "Pick one",
		Type:          TypeMCQ,
		Options:       []string{"A", "B", "C", "D"},
		CorrectAnswer: "E",
		Points:        1,
	}
	if err := q.Validate(); err == nil {
		t.Fatal("expected validation error for correct answer outside options")
	}

	q.CorrectAnswer = "A"
	q.Options = q.Options[:3]
	if err := q.Validate(); err == nil {
		t.Fatal("expected validation error for wrong option count")
	}
}

func TestValidCountBounds(t *testing.T) {
	if ValidCount(0) {
		t.Fatal("0 should be invalid")
	}
	if !ValidCount(1) || !ValidCount(20) {
		t.Fatal("1 and 20 should be valid")
	}
	if ValidCount(21) {
		t.Fatal("21 should be invalid")
	}
}

func TestNormalizeFillsDefaults(t *testing.T) {
	qs := Normalize([]Question{
		{Question: "What is water made of?", Options: []string{"H2O", "CO2", "O2", "N2"}, CorrectAnswer: "H2O"},
	}, DifficultyEasy, TypeMCQ)

	if len(qs) != 1 {
		t.Fatalf("expected 1 question, got %d", len(qs))
	}
	if qs[0].ID != "q1" {
		t.Fatalf("expected default id q1, got %q", qs[0].ID)
	}
	if qs[0].Points != 1 {
		t.Fatalf("expected default 1 point, got %d", qs[0].Points)
	}
	if qs[0].Type != TypeMCQ {
		t.Fatalf("type should be forced to the paper type, got %q", qs[0].Type)
	}
}

func TestNormalizeReplacesInvalidQuestions(t *testing.T) {
	qs := Normalize([]Question{
		{Question: "Pick one", Options: []string{"A", "B"}, CorrectAnswer: "A"},
	}, DifficultyMedium, TypeMCQ)

	if len(qs) != 1 {
		t.Fatalf("expected 1 question, got %d", len(qs))
	}
	if err := qs[0].Validate(); err != nil {
		t.Fatalf("replacement should be schema-valid: %v", err)
	}
	if len(qs[0].Options) != MCQOptionCount {
		t.Fatalf("expected placeholder options, got %v", qs[0].Options)
	}
}

func TestNormalizeStripsOptionsFromDescriptive(t *testing.T) {
	qs := Normalize([]Question{
		{Question: "Explain photosynthesis.", Options: []string{"A", "B", "C", "D"}, CorrectAnswer: "A"},
	}, DifficultyHard, TypeDescriptive)

	if qs[0].Options != nil || qs[0].CorrectAnswer != "" {
		t.Fatalf("descriptive questions should carry no options: %+v", qs[0])
	}
	if qs[0].Points != 5 {
		t.Fatalf("expected default 5 points, got %d", qs[0].Points)
	}
}

func TestParseRejectsEmptyArray(t *testing.T) {
	if _, ok := Parse("[]"); ok {
		t.Fatal("empty array should report malformed so callers fall back")
	}
}
