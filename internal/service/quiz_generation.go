package service

import (
	"context"
	"fmt"
	"strings"

	"quiz-prep/internal/domain"
	"quiz-prep/internal/logger"

	"go.uber.org/zap"
)

const (
	DefaultGeneratedQuestions = 10
	MaxGeneratedQuestions     = 30
)

// DefaultQuestionTypes is used when a generation request names no types.
var DefaultQuestionTypes = []string{domain.QuestionTypeMultipleChoice, domain.QuestionTypeTrueFalse}

// QuizGenerationService builds LLM quizzes from a chapter's flashcards.
type QuizGenerationService interface {
	GenerateFromChapter(ctx context.Context, chapterID string, count int, questionTypes []string) (*domain.GeneratedQuiz, error)
}

type quizGenerationServiceImpl struct {
	flashcardRepo domain.FlashcardRepository
	generator     domain.QuestionGenerator
	catalog       *ChapterCatalog
}

// NewQuizGenerationService creates a new instance of QuizGenerationService.
func NewQuizGenerationService(flashcardRepo domain.FlashcardRepository, generator domain.QuestionGenerator, catalog *ChapterCatalog) QuizGenerationService {
	return &quizGenerationServiceImpl{
		flashcardRepo: flashcardRepo,
		generator:     generator,
		catalog:       catalog,
	}
}

func (s *quizGenerationServiceImpl) GenerateFromChapter(ctx context.Context, chapterID string, count int, questionTypes []string) (*domain.GeneratedQuiz, error) {
	if count == 0 {
		count = DefaultGeneratedQuestions
	}
	if count < 1 || count > MaxGeneratedQuestions {
		return nil, domain.ValidationErrors{domain.NewOutOfRangeError("count", count, 1, MaxGeneratedQuestions)}
	}

	types, err := normalizeQuestionTypes(questionTypes)
	if err != nil {
		return nil, err
	}

	chapter, ok := s.catalog.ByID(chapterID)
	if !ok {
		return nil, domain.NewChapterNotFoundError(chapterID)
	}

	cards, err := s.flashcardRepo.ListByChapter(ctx, chapterID, count)
	if err != nil {
		return nil, fmt.Errorf("failed to list flashcards: %w", err)
	}
	if len(cards) == 0 {
		return nil, domain.NewNotFoundError(fmt.Sprintf("no flashcards found for chapter %q", chapter.Title))
	}

	var b strings.Builder
	for i, card := range cards {
		if i > 0 {
			b.WriteString("\n\n")
		}
		fmt.Fprintf(&b, "Q: %s\nA: %s", card.Question, card.Answer)
	}

	logger.Get().Info("Generating quiz from chapter",
		zap.String("chapterID", chapterID),
		zap.String("chapter", chapter.Title),
		zap.Int("flashcards", len(cards)),
		zap.Strings("questionTypes", types))

	return s.generator.GenerateQuestions(ctx, b.String(), len(cards), types)
}

func normalizeQuestionTypes(questionTypes []string) ([]string, error) {
	if len(questionTypes) == 0 {
		return append([]string(nil), DefaultQuestionTypes...), nil
	}
	seen := make(map[string]bool, len(questionTypes))
	types := make([]string, 0, len(questionTypes))
	for _, t := range questionTypes {
		t = strings.TrimSpace(t)
		switch t {
		case domain.QuestionTypeMultipleChoice, domain.QuestionTypeTrueFalse, domain.QuestionTypeShortAnswer:
		default:
			return nil, domain.ValidationErrors{domain.NewInvalidFormatError("question_types", t)}
		}
		if !seen[t] {
			seen[t] = true
			types = append(types, t)
		}
	}
	return types, nil
}
