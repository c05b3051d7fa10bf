package service

import (
	"context"
	"time"

	"quiz-prep/internal/domain"

	"github.com/stretchr/testify/mock"
)

// --- MockUserRepository ---
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) CreateUser(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetUserByExternalID(ctx context.Context, externalID string) (*domain.User, error) {
	args := m.Called(ctx, externalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) UpdateUser(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

// --- MockQuizAttemptRepository ---
type MockQuizAttemptRepository struct {
	mock.Mock
}

func (m *MockQuizAttemptRepository) CreateAttempt(ctx context.Context, attempt *domain.QuizAttempt) error {
	args := m.Called(ctx, attempt)
	return args.Error(0)
}

func (m *MockQuizAttemptRepository) GetAttemptByID(ctx context.Context, attemptID string) (*domain.QuizAttempt, error) {
	args := m.Called(ctx, attemptID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.QuizAttempt), args.Error(1)
}

func (m *MockQuizAttemptRepository) GetAttemptByIDForUpdate(ctx context.Context, attemptID string) (*domain.QuizAttempt, error) {
	args := m.Called(ctx, attemptID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.QuizAttempt), args.Error(1)
}

func (m *MockQuizAttemptRepository) UpdateAttempt(ctx context.Context, attempt *domain.QuizAttempt) error {
	args := m.Called(ctx, attempt)
	return args.Error(0)
}

func (m *MockQuizAttemptRepository) AggregateCompleted(ctx context.Context, userID string) (*domain.AttemptAggregate, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AttemptAggregate), args.Error(1)
}

func (m *MockQuizAttemptRepository) CountCompletedSince(ctx context.Context, userID string, since *time.Time) (int, error) {
	args := m.Called(ctx, userID, since)
	return args.Int(0), args.Error(1)
}

func (m *MockQuizAttemptRepository) CountRecentCompleted(ctx context.Context, userID string, limit int) (int, error) {
	args := m.Called(ctx, userID, limit)
	return args.Int(0), args.Error(1)
}

func (m *MockQuizAttemptRepository) GetFavoriteChapterTitle(ctx context.Context, userID string) (*string, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*string), args.Error(1)
}

func (m *MockQuizAttemptRepository) GetChapterProgress(ctx context.Context, userID string) ([]domain.ChapterProgress, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ChapterProgress), args.Error(1)
}

// --- MockUserProgressRepository ---
type MockUserProgressRepository struct {
	mock.Mock
}

func (m *MockUserProgressRepository) GetByUserID(ctx context.Context, userID string) (*domain.UserProgress, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserProgress), args.Error(1)
}

func (m *MockUserProgressRepository) GetByUserIDForUpdate(ctx context.Context, userID string) (*domain.UserProgress, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserProgress), args.Error(1)
}

func (m *MockUserProgressRepository) SaveProgress(ctx context.Context, progress *domain.UserProgress) error {
	args := m.Called(ctx, progress)
	return args.Error(0)
}

// --- MockStudySessionRepository ---
type MockStudySessionRepository struct {
	mock.Mock
}

func (m *MockStudySessionRepository) RecordAttemptStart(ctx context.Context, userID string, day time.Time) error {
	args := m.Called(ctx, userID, day)
	return args.Error(0)
}

func (m *MockStudySessionRepository) AddCompletedTotals(ctx context.Context, userID string, day time.Time, questions, correct, durationSeconds int) error {
	args := m.Called(ctx, userID, day, questions, correct, durationSeconds)
	return args.Error(0)
}

func (m *MockStudySessionRepository) ListSessionDates(ctx context.Context, userID string) ([]time.Time, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]time.Time), args.Error(1)
}

// --- MockPaymentRepository ---
type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) GetActivePayment(ctx context.Context, userID string, now time.Time) (*domain.Payment, error) {
	args := m.Called(ctx, userID, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}

// --- MockChapterRepository ---
type MockChapterRepository struct {
	mock.Mock
}

func (m *MockChapterRepository) ListChapters(ctx context.Context) ([]domain.Chapter, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Chapter), args.Error(1)
}

func (m *MockChapterRepository) GetChapterByTitle(ctx context.Context, title string) (*domain.Chapter, error) {
	args := m.Called(ctx, title)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Chapter), args.Error(1)
}

func (m *MockChapterRepository) CreateChapter(ctx context.Context, chapter *domain.Chapter) error {
	args := m.Called(ctx, chapter)
	return args.Error(0)
}

// --- MockFlashcardRepository ---
type MockFlashcardRepository struct {
	mock.Mock
}

func (m *MockFlashcardRepository) ListByChapter(ctx context.Context, chapterID string, limit int) ([]domain.Flashcard, error) {
	args := m.Called(ctx, chapterID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Flashcard), args.Error(1)
}

func (m *MockFlashcardRepository) List(ctx context.Context, filter domain.FlashcardFilter) ([]domain.Flashcard, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Flashcard), args.Error(1)
}

func (m *MockFlashcardRepository) GetByID(ctx context.Context, id string) (*domain.Flashcard, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Flashcard), args.Error(1)
}

func (m *MockFlashcardRepository) Create(ctx context.Context, card *domain.Flashcard) error {
	args := m.Called(ctx, card)
	return args.Error(0)
}

func (m *MockFlashcardRepository) CreateBatch(ctx context.Context, cards []*domain.Flashcard) error {
	args := m.Called(ctx, cards)
	return args.Error(0)
}

// --- MockCache ---
type MockCache struct {
	mock.Mock
}

func (m *MockCache) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockCache) Set(ctx context.Context, key string, value string, expiration time.Duration) error {
	args := m.Called(ctx, key, value, expiration)
	return args.Error(0)
}

func (m *MockCache) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockCache) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// --- MockQuestionGenerator ---
type MockQuestionGenerator struct {
	mock.Mock
}

func (m *MockQuestionGenerator) GenerateQuestions(ctx context.Context, content string, count int, questionTypes []string) (*domain.GeneratedQuiz, error) {
	args := m.Called(ctx, content, count, questionTypes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GeneratedQuiz), args.Error(1)
}

// --- MockProgressAggregator ---
type MockProgressAggregator struct {
	mock.Mock
}

func (m *MockProgressAggregator) Recompute(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockProgressAggregator) GetStatistics(ctx context.Context, userID string) (*domain.StatsView, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StatsView), args.Error(1)
}

func (m *MockProgressAggregator) GetChapterProgress(ctx context.Context, userID string) ([]domain.ChapterProgress, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ChapterProgress), args.Error(1)
}

// --- MockStatsService ---
type MockStatsService struct {
	mock.Mock
}

func (m *MockStatsService) GetStatistics(ctx context.Context, userID string) (*domain.StatsView, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StatsView), args.Error(1)
}

func (m *MockStatsService) Invalidate(ctx context.Context, userID string) {
	m.Called(ctx, userID)
}

// passThroughTxManager runs fn directly on the caller's context.
type passThroughTxManager struct{}

func (passThroughTxManager) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

var testNow = time.Date(2026, 3, 10, 15, 30, 0, 0, time.UTC)

func fixedClock() time.Time {
	return testNow
}

func strPtr(s string) *string { return &s }

func intPtr(i int) *int { return &i }
