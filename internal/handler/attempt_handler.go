package handler

import (
	"quiz-prep/internal/domain"
	"quiz-prep/internal/dto"
	"quiz-prep/internal/logger"
	"quiz-prep/internal/service"
	"quiz-prep/internal/validation"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// AttemptHandler handles the quiz attempt lifecycle
type AttemptHandler struct {
	tracker   service.AttemptTracker
	validator *validation.Validator
}

// NewAttemptHandler creates a new AttemptHandler instance
func NewAttemptHandler(tracker service.AttemptTracker, validator *validation.Validator) *AttemptHandler {
	return &AttemptHandler{tracker: tracker, validator: validator}
}

// StartAttempt godoc
// @Summary Start a quiz attempt
// @Description Opens a new quiz attempt when the user's tier limit allows it
// @Tags attempts
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param request body dto.StartAttemptRequest true "Attempt details"
// @Success 201 {object} dto.StartAttemptResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 403 {object} middleware.ErrorResponse "Tier limit reached"
// @Failure 404 {object} middleware.ErrorResponse "Chapter not found"
// @Router /quiz-attempts [post]
func (h *AttemptHandler) StartAttempt(c *fiber.Ctx) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}

	var req dto.StartAttemptRequest
	if err := parseBody(c, h.validator, &req); err != nil {
		return err
	}

	attemptID, status, err := h.tracker.StartGated(c.UserContext(), userID, req.QuizType, req.ChapterID)
	if err != nil {
		return err
	}

	resp := dto.StartAttemptResponse{AttemptID: attemptID}
	if status != nil {
		resp.Message = status.Message
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// RecordAnswer godoc
// @Summary Record an answer
// @Description Records one answered question on an open attempt
// @Tags attempts
// @Security ApiKeyAuth
// @Accept json
// @Param id path string true "Attempt ID"
// @Param request body dto.RecordAnswerRequest true "Answer"
// @Success 204
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Failure 409 {object} middleware.ErrorResponse "Attempt already completed"
// @Router /quiz-attempts/{id}/answers [post]
func (h *AttemptHandler) RecordAnswer(c *fiber.Ctx) error {
	attemptID, err := h.ownedAttemptID(c)
	if err != nil {
		return err
	}

	var req dto.RecordAnswerRequest
	if err := parseBody(c, h.validator, &req); err != nil {
		return err
	}

	record := domain.AnswerRecord{
		FlashcardID:      req.FlashcardID,
		QuestionText:     req.QuestionText,
		QuestionType:     req.QuestionType,
		CorrectAnswer:    req.CorrectAnswer,
		UserAnswer:       req.UserAnswer,
		IsCorrect:        req.IsCorrect,
		TimeTakenSeconds: req.TimeTakenSeconds,
	}
	if err := h.tracker.RecordAnswer(c.UserContext(), attemptID, record); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// CompleteAttempt godoc
// @Summary Complete a quiz attempt
// @Description Computes the attempt totals from its answers and refreshes the user's progress
// @Tags attempts
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param id path string true "Attempt ID"
// @Param request body dto.CompleteAttemptRequest false "Total time"
// @Success 200 {object} dto.AttemptResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Failure 500 {object} middleware.ErrorResponse "Progress aggregation failed"
// @Router /quiz-attempts/{id}/complete [post]
func (h *AttemptHandler) CompleteAttempt(c *fiber.Ctx) error {
	attemptID, err := h.ownedAttemptID(c)
	if err != nil {
		return err
	}

	var req dto.CompleteAttemptRequest
	if len(c.Body()) > 0 {
		if err := parseBody(c, h.validator, &req); err != nil {
			return err
		}
	}

	attempt, err := h.tracker.Complete(c.UserContext(), attemptID, req.TotalTimeSeconds)
	if err != nil {
		return err
	}

	logger.Get().Debug("Attempt completed via API",
		zap.String("attempt_id", attemptID),
		zap.Int("total_questions", attempt.TotalQuestions),
	)
	return c.JSON(toAttemptResponse(attempt))
}

// GetAttempt godoc
// @Summary Get a quiz attempt
// @Tags attempts
// @Security ApiKeyAuth
// @Produce json
// @Param id path string true "Attempt ID"
// @Success 200 {object} dto.AttemptResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /quiz-attempts/{id} [get]
func (h *AttemptHandler) GetAttempt(c *fiber.Ctx) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}
	attemptID := attemptIDParam(c)

	attempt, err := h.tracker.Get(c.UserContext(), attemptID)
	if err != nil {
		return err
	}
	if attempt.UserID != userID {
		return domain.NewAttemptNotFoundError(attemptID)
	}
	return c.JSON(toAttemptResponse(attempt))
}

// ownedAttemptID returns the path attempt id after checking it belongs to the caller.
// Another user's attempt is reported as not found.
func (h *AttemptHandler) ownedAttemptID(c *fiber.Ctx) (string, error) {
	userID, err := requireUserID(c)
	if err != nil {
		return "", err
	}
	attemptID := attemptIDParam(c)

	attempt, err := h.tracker.Get(c.UserContext(), attemptID)
	if err != nil {
		return "", err
	}
	if attempt.UserID != userID {
		logger.Get().Warn("Attempt accessed by another user",
			zap.String("attempt_id", attemptID),
			zap.String("user_id", userID),
		)
		return "", domain.NewAttemptNotFoundError(attemptID)
	}
	return attemptID, nil
}

func toAttemptResponse(a *domain.QuizAttempt) dto.AttemptResponse {
	return dto.AttemptResponse{
		ID:               a.ID,
		QuizType:         a.QuizType,
		ChapterID:        a.ChapterID,
		TotalQuestions:   a.TotalQuestions,
		CorrectAnswers:   a.CorrectAnswers,
		ScorePercentage:  domain.RoundScore(a.ScorePercentage),
		TimeTakenSeconds: a.TimeTakenSeconds,
		StartedAt:        a.StartedAt,
		CompletedAt:      a.CompletedAt,
		IsCompleted:      a.IsCompleted,
	}
}
