package questions

import "fmt"

var fallbackMCQOptions = []string{
	"Option A - First possible answer",
	"Option B - Second possible answer",
	"Option C - Third possible answer",
	"Option D - Fourth possible answer",
}

// Fallback synthesizes a deterministic placeholder question for the given
// zero-based index. Used when the model response cannot be parsed or comes
// up short of the requested count.
func Fallback(index int, difficulty, questionType string) Question {
	q := Question{
		ID:       fmt.Sprintf("q%d", index+1),
		Question: fmt.Sprintf("AI-generated %s %s question %d based on your content.", difficulty, questionType, index+1),
		Type:     questionType,
	}
	if questionType == TypeMCQ {
		q.Options = append([]string(nil), fallbackMCQOptions...)
		q.CorrectAnswer = fallbackMCQOptions[0]
		q.Points = 1
	} else {
		q.Points = 5
	}
	return q
}

// FallbackSet synthesizes a full set of count placeholder questions.
func FallbackSet(count int, difficulty, questionType string) []Question {
	out := make([]Question, 0, count)
	for i := 0; i < count; i++ {
		out = append(out, Fallback(i, difficulty, questionType))
	}
	return out
}
