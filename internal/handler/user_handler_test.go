package handler_test

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"quiz-prep/internal/domain"
	"quiz-prep/internal/dto"
	"quiz-prep/internal/handler"
	"quiz-prep/internal/middleware"
	"quiz-prep/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type userHandlerMocks struct {
	users      *MockUserService
	stats      *MockStatsService
	aggregator *MockProgressAggregator
	gate       *MockTierGate
}

func setupUserApp(m userHandlerMocks, userID string) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler()})
	h := handler.NewUserHandler(m.users, m.stats, m.aggregator, m.gate)

	users := app.Group("/api/users", withUser(userID))
	users.Get("/me", h.GetMyProfile)
	users.Get("/me/stats", h.GetMyStatistics)
	users.Get("/me/chapter-progress", h.GetMyChapterProgress)
	users.Get("/me/quiz-limit", h.GetMyQuizLimit)
	return app
}

func TestGetMyProfile(t *testing.T) {
	expires := time.Date(2026, 3, 17, 0, 0, 0, 0, time.UTC)
	mocks := userHandlerMocks{users: &MockUserService{
		GetProfileFunc: func(ctx context.Context, userID string) (*service.UserProfile, error) {
			assert.Equal(t, testUserID, userID)
			return &service.UserProfile{
				User:          &domain.User{ID: testUserID, Email: "ana@example.com", FirstName: "Ana", LastName: "Silva"},
				Tier:          domain.Tier7Days,
				TierExpiresAt: &expires,
			}, nil
		},
	}}

	resp, err := setupUserApp(mocks, testUserID).Test(httptest.NewRequest("GET", "/api/users/me", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body dto.UserProfileResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "Ana Silva", body.Name)
	assert.Equal(t, domain.Tier7Days, body.Tier)
	require.NotNil(t, body.TierExpiresAt)
	assert.True(t, expires.Equal(*body.TierExpiresAt))
}

func TestGetMyProfile_NotFound(t *testing.T) {
	mocks := userHandlerMocks{users: &MockUserService{
		GetProfileFunc: func(ctx context.Context, userID string) (*service.UserProfile, error) {
			return nil, domain.NewUserNotFoundError(userID)
		},
	}}

	resp, err := setupUserApp(mocks, testUserID).Test(httptest.NewRequest("GET", "/api/users/me", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestGetMyStatistics(t *testing.T) {
	favorite := "Canada History"
	mocks := userHandlerMocks{stats: &MockStatsService{
		GetStatisticsFunc: func(ctx context.Context, userID string) (*domain.StatsView, error) {
			return &domain.StatsView{TotalQuizAttempts: 4, AverageScore: 72.5, CurrentStudyStreak: 3, FavoriteChapter: &favorite, RecentAttempts: 4}, nil
		},
	}}

	resp, err := setupUserApp(mocks, testUserID).Test(httptest.NewRequest("GET", "/api/users/me/stats", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body domain.StatsView
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, 4, body.TotalQuizAttempts)
	assert.Equal(t, 72.5, body.AverageScore)
	require.NotNil(t, body.FavoriteChapter)
	assert.Equal(t, favorite, *body.FavoriteChapter)
}

func TestGetMyChapterProgress(t *testing.T) {
	mocks := userHandlerMocks{aggregator: &MockProgressAggregator{
		GetChapterProgressFunc: func(ctx context.Context, userID string) ([]domain.ChapterProgress, error) {
			return []domain.ChapterProgress{}, nil
		},
	}}

	resp, err := setupUserApp(mocks, testUserID).Test(httptest.NewRequest("GET", "/api/users/me/chapter-progress", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body []domain.ChapterProgress
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.NotNil(t, body)
	assert.Empty(t, body)
}

func TestGetMyQuizLimit(t *testing.T) {
	mocks := userHandlerMocks{gate: &MockTierGate{
		CheckUserFunc: func(ctx context.Context, userID string) (*domain.QuizLimitStatus, error) {
			return &domain.QuizLimitStatus{Allowed: true, Message: "1 test remaining", Completed: 19, Limit: 20, Tier: domain.Tier7Days}, nil
		},
	}}

	resp, err := setupUserApp(mocks, testUserID).Test(httptest.NewRequest("GET", "/api/users/me/quiz-limit", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body domain.QuizLimitStatus
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.True(t, body.Allowed)
	assert.Equal(t, 19, body.Completed)
	assert.Equal(t, "1 test remaining", body.Message)
}

func TestUserRoutes_RequireUser(t *testing.T) {
	app := setupUserApp(userHandlerMocks{}, "")
	for _, path := range []string{"/api/users/me", "/api/users/me/stats", "/api/users/me/chapter-progress", "/api/users/me/quiz-limit"} {
		resp, err := app.Test(httptest.NewRequest("GET", path, nil), -1)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode, path)
	}
}
