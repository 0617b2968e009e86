package llm

import (
	"fmt"
	"strings"
)

var modificationKeywords = []string{
	"modify", "change", "update", "edit", "improve", "fix", "correct",
	"make", "add", "remove", "delete", "replace", "adjust", "enhance",
	"harder", "easier", "difficult", "simple", "better", "clearer",
	"current", "existing", "this", "these questions",
}

// IsModificationRequest reports whether the prompt asks to rework an
// existing question set rather than generate a fresh one. Any keyword hit
// counts, substring matching included.
func IsModificationRequest(prompt string) bool {
	lower := strings.ToLower(prompt)
	for _, kw := range modificationKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

const mcqFormatExample = `
[
  {
    "id": "q1",
    "question": "Question text here?",
    "type": "mcq",
    "options": ["Option A", "Option B", "Option C", "Option D"],
    "correctAnswer": "Option A",
    "points": 1
  }
]
`

const descriptiveFormatExample = `
[
  {
    "id": "q1",
    "question": "Question text here?",
    "type": "descriptive",
    "points": 5
  }
]
`

func formatExample(questionType string) string {
	if questionType == "mcq" {
		return mcqFormatExample
	}
	return descriptiveFormatExample
}

// ComposeContext merges the user prompt with document text and the image
// hint before the task-specific template is applied.
func ComposeContext(prompt, extractedText string, imageCount int) string {
	full := prompt
	if strings.TrimSpace(extractedText) != "" {
		full = fmt.Sprintf("%s\n\nAdditional content from uploaded documents:\n%s", prompt, extractedText)
	}
	if imageCount > 0 {
		full += fmt.Sprintf("\n\nImportant: I have also provided %d image(s). Please analyze these images carefully and generate questions based on their visual content, text within them, diagrams, charts, or any educational material shown in the images.", imageCount)
	}
	return full
}

// ModificationPrompt wraps an existing-questions prompt with the strict
// JSON output contract.
func ModificationPrompt(fullContext, questionType string) string {
	return fmt.Sprintf(`%s

CRITICAL: You must respond with ONLY a valid JSON array in this exact format, no additional text or explanation:
%s`, fullContext, formatExample(questionType))
}

// GenerationPrompt builds the fresh-generation template with the full
// requirements block and the strict JSON output contract.
func GenerationPrompt(fullContext, difficulty, questionType string, questionCount int) string {
	var requirements string
	if questionType == "mcq" {
		requirements = `
For multiple choice questions, provide:
- A clear, specific question
- 4 distinct options (A, B, C, D)
- One correct answer
- Each question worth 1 point
- Make sure the incorrect options are plausible but clearly wrong
`
	} else {
		requirements = `
For descriptive questions, provide:
- A clear question that requires detailed explanation
- Questions that test deep understanding of the content
- Each question worth 5 points
- Questions should encourage critical thinking and analysis
`
	}

	return fmt.Sprintf(`Generate exactly %d %s questions based on the following content with %s difficulty level:

%s

Requirements:
- Difficulty: %s
- Question type: %s
- Number of questions: %d
- Generate questions that are relevant to the provided content
- If images are provided, analyze them carefully and create questions based on their visual content, text, diagrams, or educational material
- If PDF content is provided, use the extracted text to create meaningful questions
- Ensure questions test understanding and knowledge of the material

%s
CRITICAL: You must respond with ONLY a valid JSON array in this exact format, no additional text or explanation:
%s`, questionCount, questionType, difficulty, fullContext, difficulty, questionType, questionCount, requirements, formatExample(questionType))
}
