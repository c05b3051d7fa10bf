package handler

import (
	"quiz-prep/internal/dto"
	"quiz-prep/internal/logger"
	"quiz-prep/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type UserHandler struct {
	userService service.UserService
	stats       service.StatsService
	aggregator  service.ProgressAggregator
	gate        service.TierGate
}

func NewUserHandler(userService service.UserService, stats service.StatsService, aggregator service.ProgressAggregator, gate service.TierGate) *UserHandler {
	return &UserHandler{
		userService: userService,
		stats:       stats,
		aggregator:  aggregator,
		gate:        gate,
	}
}

// GetMyProfile retrieves the profile of the currently authenticated user.
// @Summary Get My Profile
// @Description Retrieves the profile information and current tier of the logged-in user.
// @Tags users
// @Security ApiKeyAuth
// @Produce json
// @Success 200 {object} dto.UserProfileResponse
// @Failure 401 {object} middleware.ErrorResponse "Unauthorized"
// @Failure 404 {object} middleware.ErrorResponse "User not found"
// @Failure 500 {object} middleware.ErrorResponse "Internal server error"
// @Router /users/me [get]
func (h *UserHandler) GetMyProfile(c *fiber.Ctx) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}

	profile, err := h.userService.GetProfile(c.UserContext(), userID)
	if err != nil {
		return err
	}
	logger.Get().Debug("User profile retrieved", zap.String("userID", userID))

	return c.JSON(dto.UserProfileResponse{
		ID:            profile.User.ID,
		Email:         profile.User.Email,
		Name:          profile.User.DisplayName(),
		ImageURL:      profile.User.ImageURL,
		Tier:          profile.Tier,
		TierExpiresAt: profile.TierExpiresAt,
		CreatedAt:     profile.User.CreatedAt,
	})
}

// GetMyStatistics godoc
// @Summary Get My Statistics
// @Description Aggregated quiz statistics and study streaks of the logged-in user.
// @Tags users
// @Security ApiKeyAuth
// @Produce json
// @Success 200 {object} domain.StatsView
// @Failure 401 {object} middleware.ErrorResponse "Unauthorized"
// @Router /users/me/stats [get]
func (h *UserHandler) GetMyStatistics(c *fiber.Ctx) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}

	stats, err := h.stats.GetStatistics(c.UserContext(), userID)
	if err != nil {
		return err
	}
	return c.JSON(stats)
}

// GetMyChapterProgress godoc
// @Summary Get My Chapter Progress
// @Description Completed attempts and scores per chapter.
// @Tags users
// @Security ApiKeyAuth
// @Produce json
// @Success 200 {array} domain.ChapterProgress
// @Failure 401 {object} middleware.ErrorResponse "Unauthorized"
// @Router /users/me/chapter-progress [get]
func (h *UserHandler) GetMyChapterProgress(c *fiber.Ctx) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}

	progress, err := h.aggregator.GetChapterProgress(c.UserContext(), userID)
	if err != nil {
		return err
	}
	return c.JSON(progress)
}

// GetMyQuizLimit godoc
// @Summary Get My Quiz Limit
// @Description Whether the user's tier allows starting another quiz.
// @Tags users
// @Security ApiKeyAuth
// @Produce json
// @Success 200 {object} domain.QuizLimitStatus
// @Failure 401 {object} middleware.ErrorResponse "Unauthorized"
// @Router /users/me/quiz-limit [get]
func (h *UserHandler) GetMyQuizLimit(c *fiber.Ctx) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}

	status, err := h.gate.CheckUser(c.UserContext(), userID)
	if err != nil {
		return err
	}
	return c.JSON(status)
}
