package service

import (
	"context"
	"fmt"
	"strings"

	"quiz-prep/internal/domain"
	"quiz-prep/internal/logger"
	"quiz-prep/internal/validation"

	"go.uber.org/zap"
)

const (
	DefaultFlashcardPageSize = 100
	MaxFlashcardPageSize     = 500
	MaxFlashcardImport       = 1000
)

// FlashcardService manages the flashcard catalog.
type FlashcardService interface {
	// List pages through flashcards. A zero limit selects DefaultFlashcardPageSize.
	List(ctx context.Context, filter domain.FlashcardFilter) ([]domain.Flashcard, error)
	Get(ctx context.Context, id string) (*domain.Flashcard, error)
	Create(ctx context.Context, input domain.FlashcardInput) (*domain.Flashcard, error)
	// Import stores every card in one transaction and returns how many were created.
	// Nothing is stored when any card is invalid.
	Import(ctx context.Context, inputs []domain.FlashcardInput) (int, error)
}

type flashcardServiceImpl struct {
	txManager     domain.TransactionManager
	flashcardRepo domain.FlashcardRepository
	catalog       *ChapterCatalog
	validator     *validation.Validator
}

// NewFlashcardService creates a new instance of FlashcardService.
func NewFlashcardService(txManager domain.TransactionManager, flashcardRepo domain.FlashcardRepository, catalog *ChapterCatalog) FlashcardService {
	return &flashcardServiceImpl{
		txManager:     txManager,
		flashcardRepo: flashcardRepo,
		catalog:       catalog,
		validator:     validation.NewValidator(),
	}
}

func (s *flashcardServiceImpl) List(ctx context.Context, filter domain.FlashcardFilter) ([]domain.Flashcard, error) {
	if filter.Limit == 0 {
		filter.Limit = DefaultFlashcardPageSize
	}
	var errs domain.ValidationErrors
	if filter.Limit < 1 || filter.Limit > MaxFlashcardPageSize {
		errs = append(errs, domain.NewOutOfRangeError("limit", filter.Limit, 1, MaxFlashcardPageSize))
	}
	if filter.Offset < 0 {
		errs = append(errs, domain.NewInvalidFormatError("skip", filter.Offset))
	}
	if len(errs) > 0 {
		return nil, errs
	}
	filter.Category = strings.TrimSpace(filter.Category)
	filter.Tag = strings.TrimSpace(filter.Tag)

	return s.flashcardRepo.List(ctx, filter)
}

func (s *flashcardServiceImpl) Get(ctx context.Context, id string) (*domain.Flashcard, error) {
	card, err := s.flashcardRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if card == nil {
		return nil, domain.NewFlashcardNotFoundError(id)
	}
	return card, nil
}

func (s *flashcardServiceImpl) Create(ctx context.Context, input domain.FlashcardInput) (*domain.Flashcard, error) {
	card, err := s.build(input)
	if err != nil {
		return nil, err
	}
	if err := s.flashcardRepo.Create(ctx, card); err != nil {
		return nil, err
	}
	logger.Get().Info("Flashcard created", zap.String("flashcardID", card.ID))
	return card, nil
}

func (s *flashcardServiceImpl) Import(ctx context.Context, inputs []domain.FlashcardInput) (int, error) {
	if len(inputs) == 0 {
		return 0, domain.ValidationErrors{domain.NewMissingFieldError("flashcards")}
	}
	if len(inputs) > MaxFlashcardImport {
		return 0, domain.ValidationErrors{domain.NewOutOfRangeError("flashcards", len(inputs), 1, MaxFlashcardImport)}
	}

	cards := make([]*domain.Flashcard, 0, len(inputs))
	for i, input := range inputs {
		card, err := s.build(input)
		if err != nil {
			return 0, indexErrors(i, err)
		}
		cards = append(cards, card)
	}

	err := s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		return s.flashcardRepo.CreateBatch(txCtx, cards)
	})
	if err != nil {
		return 0, err
	}

	logger.Get().Info("Flashcards imported", zap.Int("count", len(cards)))
	return len(cards), nil
}

// build validates input and resolves its chapter against the catalog.
func (s *flashcardServiceImpl) build(input domain.FlashcardInput) (*domain.Flashcard, error) {
	if errs := s.validator.Struct(input); errs != nil {
		return nil, errs
	}

	var chapterID *string
	switch {
	case input.ChapterID != nil && *input.ChapterID != "":
		if !s.catalog.Has(*input.ChapterID) {
			return nil, domain.NewChapterNotFoundError(*input.ChapterID)
		}
		id := *input.ChapterID
		chapterID = &id
	case strings.TrimSpace(input.Chapter) != "":
		id, ok := s.catalog.ByTitle(strings.TrimSpace(input.Chapter))
		if !ok {
			return nil, domain.NewChapterNotFoundError(input.Chapter)
		}
		chapterID = &id
	}

	tags := make([]string, 0, len(input.Tags))
	for _, tag := range input.Tags {
		tags = append(tags, strings.TrimSpace(tag))
	}

	return &domain.Flashcard{
		ChapterID: chapterID,
		Question:  strings.TrimSpace(input.Question),
		Answer:    strings.TrimSpace(input.Answer),
		Category:  strings.TrimSpace(input.Category),
		Tags:      tags,
	}, nil
}

// indexErrors prefixes field errors with the card's position in the import.
func indexErrors(i int, err error) error {
	errs, ok := err.(domain.ValidationErrors)
	if !ok {
		return fmt.Errorf("flashcard %d: %w", i, err)
	}
	out := make(domain.ValidationErrors, len(errs))
	for j, e := range errs {
		e.Field = fmt.Sprintf("flashcards[%d].%s", i, e.Field)
		out[j] = e
	}
	return out
}
