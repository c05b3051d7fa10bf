package handler_test

import (
	"context"
	"time"

	"quiz-prep/internal/domain"
	"quiz-prep/internal/service"
)

// --- Manual Mocks ---

type MockAttemptTracker struct {
	StartFunc        func(ctx context.Context, userID, quizType string, chapterID *string) (string, error)
	StartGatedFunc   func(ctx context.Context, userID, quizType string, chapterID *string) (string, *domain.QuizLimitStatus, error)
	RecordAnswerFunc func(ctx context.Context, attemptID string, record domain.AnswerRecord) error
	CompleteFunc     func(ctx context.Context, attemptID string, totalTimeSeconds *int) (*domain.QuizAttempt, error)
	GetFunc          func(ctx context.Context, attemptID string) (*domain.QuizAttempt, error)
}

func (m *MockAttemptTracker) Start(ctx context.Context, userID, quizType string, chapterID *string) (string, error) {
	if m.StartFunc != nil {
		return m.StartFunc(ctx, userID, quizType, chapterID)
	}
	panic("MockAttemptTracker.StartFunc not implemented")
}

func (m *MockAttemptTracker) StartGated(ctx context.Context, userID, quizType string, chapterID *string) (string, *domain.QuizLimitStatus, error) {
	if m.StartGatedFunc != nil {
		return m.StartGatedFunc(ctx, userID, quizType, chapterID)
	}
	panic("MockAttemptTracker.StartGatedFunc not implemented")
}

func (m *MockAttemptTracker) RecordAnswer(ctx context.Context, attemptID string, record domain.AnswerRecord) error {
	if m.RecordAnswerFunc != nil {
		return m.RecordAnswerFunc(ctx, attemptID, record)
	}
	panic("MockAttemptTracker.RecordAnswerFunc not implemented")
}

func (m *MockAttemptTracker) Complete(ctx context.Context, attemptID string, totalTimeSeconds *int) (*domain.QuizAttempt, error) {
	if m.CompleteFunc != nil {
		return m.CompleteFunc(ctx, attemptID, totalTimeSeconds)
	}
	panic("MockAttemptTracker.CompleteFunc not implemented")
}

func (m *MockAttemptTracker) Get(ctx context.Context, attemptID string) (*domain.QuizAttempt, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, attemptID)
	}
	panic("MockAttemptTracker.GetFunc not implemented")
}

type MockUserService struct {
	EnsureUserFunc func(ctx context.Context, identity domain.Identity) (*domain.User, error)
	GetProfileFunc func(ctx context.Context, userID string) (*service.UserProfile, error)
}

func (m *MockUserService) EnsureUser(ctx context.Context, identity domain.Identity) (*domain.User, error) {
	if m.EnsureUserFunc != nil {
		return m.EnsureUserFunc(ctx, identity)
	}
	panic("MockUserService.EnsureUserFunc not implemented")
}

func (m *MockUserService) GetProfile(ctx context.Context, userID string) (*service.UserProfile, error) {
	if m.GetProfileFunc != nil {
		return m.GetProfileFunc(ctx, userID)
	}
	panic("MockUserService.GetProfileFunc not implemented")
}

type MockStatsService struct {
	GetStatisticsFunc func(ctx context.Context, userID string) (*domain.StatsView, error)
}

func (m *MockStatsService) GetStatistics(ctx context.Context, userID string) (*domain.StatsView, error) {
	if m.GetStatisticsFunc != nil {
		return m.GetStatisticsFunc(ctx, userID)
	}
	panic("MockStatsService.GetStatisticsFunc not implemented")
}

func (m *MockStatsService) Invalidate(ctx context.Context, userID string) {}

type MockProgressAggregator struct {
	GetChapterProgressFunc func(ctx context.Context, userID string) ([]domain.ChapterProgress, error)
}

func (m *MockProgressAggregator) Recompute(ctx context.Context, userID string) error {
	panic("MockProgressAggregator.Recompute not implemented")
}

func (m *MockProgressAggregator) GetStatistics(ctx context.Context, userID string) (*domain.StatsView, error) {
	panic("MockProgressAggregator.GetStatistics not implemented")
}

func (m *MockProgressAggregator) GetChapterProgress(ctx context.Context, userID string) ([]domain.ChapterProgress, error) {
	if m.GetChapterProgressFunc != nil {
		return m.GetChapterProgressFunc(ctx, userID)
	}
	panic("MockProgressAggregator.GetChapterProgressFunc not implemented")
}

type MockTierGate struct {
	CheckUserFunc func(ctx context.Context, userID string) (*domain.QuizLimitStatus, error)
}

func (m *MockTierGate) CanStart(ctx context.Context, userID, tier string, tierStartedAt *time.Time) (*domain.QuizLimitStatus, error) {
	panic("MockTierGate.CanStart not implemented")
}

func (m *MockTierGate) CheckUser(ctx context.Context, userID string) (*domain.QuizLimitStatus, error) {
	if m.CheckUserFunc != nil {
		return m.CheckUserFunc(ctx, userID)
	}
	panic("MockTierGate.CheckUserFunc not implemented")
}

type MockQuizGenerationService struct {
	GenerateFromChapterFunc func(ctx context.Context, chapterID string, count int, questionTypes []string) (*domain.GeneratedQuiz, error)
}

func (m *MockQuizGenerationService) GenerateFromChapter(ctx context.Context, chapterID string, count int, questionTypes []string) (*domain.GeneratedQuiz, error) {
	if m.GenerateFromChapterFunc != nil {
		return m.GenerateFromChapterFunc(ctx, chapterID, count, questionTypes)
	}
	panic("MockQuizGenerationService.GenerateFromChapterFunc not implemented")
}

type MockFlashcardService struct {
	ListFunc   func(ctx context.Context, filter domain.FlashcardFilter) ([]domain.Flashcard, error)
	GetFunc    func(ctx context.Context, id string) (*domain.Flashcard, error)
	CreateFunc func(ctx context.Context, input domain.FlashcardInput) (*domain.Flashcard, error)
	ImportFunc func(ctx context.Context, inputs []domain.FlashcardInput) (int, error)
}

func (m *MockFlashcardService) List(ctx context.Context, filter domain.FlashcardFilter) ([]domain.Flashcard, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	panic("MockFlashcardService.ListFunc not implemented")
}

func (m *MockFlashcardService) Get(ctx context.Context, id string) (*domain.Flashcard, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, id)
	}
	panic("MockFlashcardService.GetFunc not implemented")
}

func (m *MockFlashcardService) Create(ctx context.Context, input domain.FlashcardInput) (*domain.Flashcard, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, input)
	}
	panic("MockFlashcardService.CreateFunc not implemented")
}

func (m *MockFlashcardService) Import(ctx context.Context, inputs []domain.FlashcardInput) (int, error) {
	if m.ImportFunc != nil {
		return m.ImportFunc(ctx, inputs)
	}
	panic("MockFlashcardService.ImportFunc not implemented")
}

type MockPinger struct {
	Err error
}

func (m *MockPinger) PingContext(ctx context.Context) error { return m.Err }

type MockCache struct {
	PingErr error
}

func (m *MockCache) Get(ctx context.Context, key string) (string, error) {
	return "", domain.ErrCacheMiss
}

func (m *MockCache) Set(ctx context.Context, key string, value string, expiration time.Duration) error {
	return nil
}

func (m *MockCache) Delete(ctx context.Context, key string) error { return nil }

func (m *MockCache) Ping(ctx context.Context) error { return m.PingErr }
