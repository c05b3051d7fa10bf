package domain

import "context"

// GeneratedQuestion is one question produced by the LLM. Answer is normalised to text;
// true/false answers become "true" or "false".
type GeneratedQuestion struct {
	Question string   `json:"question"`
	Type     string   `json:"type"`
	Options  []string `json:"options,omitempty"`
	Answer   string   `json:"answer"`
}

// GeneratedQuiz is the parsed LLM reply.
type GeneratedQuiz struct {
	Summary   string              `json:"summary"`
	Questions []GeneratedQuestion `json:"quiz"`
}

// QuestionGenerator turns study content into quiz questions.
type QuestionGenerator interface {
	GenerateQuestions(ctx context.Context, content string, count int, questionTypes []string) (*GeneratedQuiz, error)
}
