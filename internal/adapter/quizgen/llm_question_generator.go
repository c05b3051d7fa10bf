package quizgen

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"quiz-prep/internal/config"
	"quiz-prep/internal/domain"
	"quiz-prep/internal/logger"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
	"github.com/tmc/langchaingo/llms/openai"
	"go.uber.org/zap"
)

const (
	defaultTimeout     = 60 * time.Second
	defaultTemperature = 0.6
	defaultMaxTokens   = 4096
)

// llmQuestionGenerator implements domain.QuestionGenerator on top of a langchaingo model.
type llmQuestionGenerator struct {
	llm     llms.Model
	timeout time.Duration
}

// NewLLMQuestionGenerator builds the model client for the configured provider. groq
// and deepseek are reached through their OpenAI-compatible endpoints.
func NewLLMQuestionGenerator(cfg config.LLMConfig) (domain.QuestionGenerator, error) {
	var (
		llm llms.Model
		err error
	)
	switch cfg.Provider {
	case "groq", "deepseek":
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("%s API key cannot be empty", cfg.Provider)
		}
		llm, err = openai.New(
			openai.WithToken(cfg.APIKey),
			openai.WithModel(cfg.Model),
			openai.WithBaseURL(cfg.BaseURL),
		)
	case "ollama":
		llm, err = ollama.New(
			ollama.WithServerURL(cfg.BaseURL),
			ollama.WithModel(cfg.Model),
			ollama.WithHTTPClient(&http.Client{Timeout: cfg.Timeout}),
		)
	default:
		return nil, fmt.Errorf("unsupported llm provider %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create %s client: %w", cfg.Provider, err)
	}

	logger.Get().Info("Initialized LLM question generator",
		zap.String("provider", cfg.Provider),
		zap.String("model", cfg.Model))
	return NewWithModel(llm, cfg.Timeout), nil
}

// NewWithModel wraps an existing model.
func NewWithModel(llm llms.Model, timeout time.Duration) domain.QuestionGenerator {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &llmQuestionGenerator{llm: llm, timeout: timeout}
}

func (g *llmQuestionGenerator) GenerateQuestions(ctx context.Context, content string, count int, questionTypes []string) (*domain.GeneratedQuiz, error) {
	l := logger.Get()
	prompt := buildPrompt(content, count, questionTypes)

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	raw, err := llms.GenerateFromSinglePrompt(ctx, g.llm, prompt,
		llms.WithTemperature(defaultTemperature),
		llms.WithMaxTokens(defaultMaxTokens),
	)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			l.Error("LLM request timed out", zap.Error(err))
			return nil, domain.NewLLMServiceError(fmt.Errorf("LLM request timed out: %w", err))
		}
		l.Error("Failed to get response from LLM", zap.Error(err))
		return nil, domain.NewLLMServiceError(fmt.Errorf("LLM call failed: %w", err))
	}
	l.Debug("Raw LLM response received", zap.Int("length", len(raw)))

	quiz, err := ParseGeneratedQuiz(raw, questionTypes)
	if err != nil {
		l.Warn("Failed to parse LLM quiz response", zap.Error(err))
		return nil, domain.NewLLMParseError(err)
	}
	return quiz, nil
}

func buildPrompt(content string, count int, questionTypes []string) string {
	quoted := make([]string, len(questionTypes))
	for i, t := range questionTypes {
		quoted[i] = fmt.Sprintf("%q", t)
	}
	return fmt.Sprintf(`You are a Quiz Master skilled in generating effective quizzes that help users deeply understand the given content. Your goal is to:
1. Summarize the key points of the content.
2. Generate a structured quiz that covers the important details, with exactly %d questions.
3. Include only the following question types: [%s].
4. Return pure JSON only. Do not include explanations, thoughts or any additional text.

### Content to Process:
"""
%s
"""

### Expected Output Format (JSON)
{
  "summary": "Brief but detailed summary of the content.",
  "quiz": [
    {"question": "Multiple-choice question?", "type": "multiple_choice", "options": ["Option A", "Option B", "Option C", "Option D"], "answer": "Correct option"},
    {"question": "True or false question?", "type": "true_false", "answer": true},
    {"question": "Short answer question?", "type": "short_answer", "answer": "Correct answer"}
  ]
}
Ensure all generated questions align with the content and test conceptual understanding.`,
		count, strings.Join(quoted, ", "), content)
}
