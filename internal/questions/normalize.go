package questions

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ExtractJSONArray strips markdown code fences and any surrounding prose,
// keeping only the text from the first '[' to the last ']'.
func ExtractJSONArray(text string) string {
	text = strings.ReplaceAll(text, "```json\n", "")
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```\n", "")
	text = strings.ReplaceAll(text, "```", "")
	text = strings.TrimSpace(text)

	start := strings.Index(text, "[")
	end := strings.LastIndex(text, "]")
	if start != -1 && end != -1 && end > start {
		text = text[start : end+1]
	}
	return text
}

// Parse decodes a model response into questions. The second return value
// reports whether decoding succeeded; callers fall back to synthesized
// questions when it did not.
func Parse(text string) ([]Question, bool) {
	cleaned := ExtractJSONArray(text)

	var parsed []Question
	if err := json.Unmarshal([]byte(cleaned), &parsed); err != nil {
		return nil, false
	}
	// An empty array is as useless as a malformed one.
	if len(parsed) == 0 {
		return nil, false
	}
	return parsed, true
}

// Normalize coerces parsed questions to the requested paper shape: missing
// IDs and points get defaults, the type is forced to the paper's type, and
// any question that still fails validation is replaced by a placeholder at
// the same position. The result is always schema-valid.
func Normalize(qs []Question, difficulty, questionType string) []Question {
	out := make([]Question, 0, len(qs))
	for i, q := range qs {
		if strings.TrimSpace(q.ID) == "" {
			q.ID = fmt.Sprintf("q%d", i+1)
		}
		q.Type = questionType
		if q.Points <= 0 {
			if questionType == TypeMCQ {
				q.Points = 1
			} else {
				q.Points = 5
			}
		}
		if questionType != TypeMCQ {
			q.Options = nil
			q.CorrectAnswer = ""
		}
		if err := q.Validate(); err != nil {
			q = Fallback(i, difficulty, questionType)
		}
		out = append(out, q)
	}
	return out
}
