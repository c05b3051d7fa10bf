package handler

import (
	"fmt"

	"quiz-prep/internal/domain"
	"quiz-prep/internal/dto"
	"quiz-prep/internal/service"
	"quiz-prep/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// FlashcardHandler serves the flashcard catalog
type FlashcardHandler struct {
	flashcards service.FlashcardService
	validator  *validation.Validator
}

func NewFlashcardHandler(flashcards service.FlashcardService, validator *validation.Validator) *FlashcardHandler {
	return &FlashcardHandler{flashcards: flashcards, validator: validator}
}

// ListFlashcards godoc
// @Summary List flashcards
// @Description Pages through flashcards, optionally filtered by chapter, category or tag
// @Tags flashcards
// @Produce json
// @Param skip query int false "Offset" default(0)
// @Param limit query int false "Page size" default(100)
// @Param chapter_id query string false "Chapter ID"
// @Param category query string false "Category"
// @Param tag query string false "Tag"
// @Success 200 {array} dto.FlashcardResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Router /flashcards [get]
func (h *FlashcardHandler) ListFlashcards(c *fiber.Ctx) error {
	filter := domain.FlashcardFilter{
		ChapterID: c.Query("chapter_id"),
		Category:  c.Query("category"),
		Tag:       c.Query("tag"),
		Offset:    c.QueryInt("skip", 0),
		Limit:     c.QueryInt("limit", service.DefaultFlashcardPageSize),
	}

	cards, err := h.flashcards.List(c.UserContext(), filter)
	if err != nil {
		return err
	}

	resp := make([]dto.FlashcardResponse, 0, len(cards))
	for i := range cards {
		resp = append(resp, toFlashcardResponse(&cards[i]))
	}
	return c.JSON(resp)
}

// GetFlashcard godoc
// @Summary Get a flashcard
// @Tags flashcards
// @Produce json
// @Param id path string true "Flashcard ID"
// @Success 200 {object} dto.FlashcardResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /flashcards/{id} [get]
func (h *FlashcardHandler) GetFlashcard(c *fiber.Ctx) error {
	card, err := h.flashcards.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(toFlashcardResponse(card))
}

// CreateFlashcard godoc
// @Summary Create a flashcard
// @Tags flashcards
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param request body dto.FlashcardRequest true "Flashcard"
// @Success 201 {object} dto.FlashcardResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 404 {object} middleware.ErrorResponse "Chapter not found"
// @Router /flashcards [post]
func (h *FlashcardHandler) CreateFlashcard(c *fiber.Ctx) error {
	var req dto.FlashcardRequest
	if err := parseBody(c, h.validator, &req); err != nil {
		return err
	}

	card, err := h.flashcards.Create(c.UserContext(), toFlashcardInput(req))
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(toFlashcardResponse(card))
}

// ImportFlashcards godoc
// @Summary Import flashcards
// @Description Stores a batch of flashcards in one transaction. Nothing is stored when any card is invalid.
// @Tags flashcards
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param request body dto.ImportFlashcardsRequest true "Flashcards"
// @Success 201 {object} dto.ImportFlashcardsResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 404 {object} middleware.ErrorResponse "Chapter not found"
// @Router /flashcards/import [post]
func (h *FlashcardHandler) ImportFlashcards(c *fiber.Ctx) error {
	var req dto.ImportFlashcardsRequest
	if err := parseBody(c, h.validator, &req); err != nil {
		return err
	}

	inputs := make([]domain.FlashcardInput, 0, len(req.Flashcards))
	for _, card := range req.Flashcards {
		inputs = append(inputs, toFlashcardInput(card))
	}

	n, err := h.flashcards.Import(c.UserContext(), inputs)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ImportFlashcardsResponse{
		Imported: n,
		Message:  fmt.Sprintf("%d flashcards imported successfully", n),
	})
}

func toFlashcardInput(req dto.FlashcardRequest) domain.FlashcardInput {
	return domain.FlashcardInput{
		Question:  req.Question,
		Answer:    req.Answer,
		Category:  req.Category,
		Tags:      req.Tags,
		ChapterID: req.ChapterID,
		Chapter:   req.Chapter,
	}
}

func toFlashcardResponse(card *domain.Flashcard) dto.FlashcardResponse {
	tags := card.Tags
	if tags == nil {
		tags = []string{}
	}
	return dto.FlashcardResponse{
		ID:        card.ID,
		ChapterID: card.ChapterID,
		Question:  card.Question,
		Answer:    card.Answer,
		Category:  card.Category,
		Tags:      tags,
		CreatedAt: card.CreatedAt,
	}
}
