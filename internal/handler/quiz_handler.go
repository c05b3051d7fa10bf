package handler

import (
	"quiz-prep/internal/dto"
	"quiz-prep/internal/logger"
	"quiz-prep/internal/service"
	"quiz-prep/internal/validation"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// QuizHandler handles LLM quiz generation requests
type QuizHandler struct {
	generation service.QuizGenerationService
	validator  *validation.Validator
}

// NewQuizHandler creates a new QuizHandler instance
func NewQuizHandler(generation service.QuizGenerationService, validator *validation.Validator) *QuizHandler {
	return &QuizHandler{generation: generation, validator: validator}
}

// GenerateQuiz godoc
// @Summary Generate a quiz
// @Description Generates quiz questions from a chapter's flashcards with the configured LLM
// @Tags quiz
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param request body dto.GenerateQuizRequest true "Generation request"
// @Success 200 {object} domain.GeneratedQuiz
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Failure 503 {object} middleware.ErrorResponse "LLM unavailable"
// @Router /quizzes/generate [post]
func (h *QuizHandler) GenerateQuiz(c *fiber.Ctx) error {
	var req dto.GenerateQuizRequest
	if err := parseBody(c, h.validator, &req); err != nil {
		return err
	}

	quiz, err := h.generation.GenerateFromChapter(c.UserContext(), req.ChapterID, req.Count, req.QuestionTypes)
	if err != nil {
		return err
	}

	logger.Get().Info("Quiz generated",
		zap.String("chapter_id", req.ChapterID),
		zap.Int("questions", len(quiz.Questions)),
	)
	return c.JSON(quiz)
}
