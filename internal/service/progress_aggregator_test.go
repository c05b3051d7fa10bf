package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"quiz-prep/internal/domain"
	"quiz-prep/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestAggregator(attempts domain.QuizAttemptRepository, progress domain.UserProgressRepository, sessions domain.StudySessionRepository) *progressAggregatorImpl {
	agg := NewProgressAggregator(attempts, progress, sessions).(*progressAggregatorImpl)
	agg.now = fixedClock
	return agg
}

func sessionDays(offsets ...int) []time.Time {
	out := make([]time.Time, 0, len(offsets))
	for _, o := range offsets {
		out = append(out, testNow.AddDate(0, 0, o))
	}
	return out
}

func TestProgressAggregator_Recompute_CreatesRow(t *testing.T) {
	attempts := new(MockQuizAttemptRepository)
	progress := new(MockUserProgressRepository)
	sessions := new(MockStudySessionRepository)
	agg := newTestAggregator(attempts, progress, sessions)

	progress.On("GetByUserIDForUpdate", mock.Anything, "user-1").Return(nil, nil).Once()
	attempts.On("AggregateCompleted", mock.Anything, "user-1").Return(&domain.AttemptAggregate{
		CompletedAttempts: 2, TotalQuestions: 15, TotalCorrect: 11, AverageScore: 72.5, BestScore: 90,
	}, nil).Once()
	sessions.On("ListSessionDates", mock.Anything, "user-1").Return(sessionDays(0, -1), nil).Once()
	progress.On("SaveProgress", mock.Anything, mock.MatchedBy(func(p *domain.UserProgress) bool {
		return p.UserID == "user-1" &&
			p.TotalQuizAttempts == 2 &&
			p.TotalQuestionsAnswered == 15 &&
			p.TotalCorrectAnswers == 11 &&
			p.AverageScore == 72.5 &&
			p.BestScore == 90 &&
			p.CurrentStudyStreak == 2 &&
			p.LongestStudyStreak == 2 &&
			p.LastStudyDate != nil && p.LastStudyDate.Equal(testNow)
	})).Return(nil).Once()

	require.NoError(t, agg.Recompute(context.Background(), "user-1"))
	attempts.AssertExpectations(t)
	progress.AssertExpectations(t)
	sessions.AssertExpectations(t)
}

func TestProgressAggregator_Recompute_LongestStreakNeverDecreases(t *testing.T) {
	attempts := new(MockQuizAttemptRepository)
	progress := new(MockUserProgressRepository)
	sessions := new(MockStudySessionRepository)
	agg := newTestAggregator(attempts, progress, sessions)

	stored := &domain.UserProgress{ID: "p-1", UserID: "user-1", CurrentStudyStreak: 9, LongestStudyStreak: 9}
	progress.On("GetByUserIDForUpdate", mock.Anything, "user-1").Return(stored, nil).Once()
	attempts.On("AggregateCompleted", mock.Anything, "user-1").Return(&domain.AttemptAggregate{CompletedAttempts: 12}, nil).Once()
	sessions.On("ListSessionDates", mock.Anything, "user-1").Return(sessionDays(0, -2), nil).Once()
	progress.On("SaveProgress", mock.Anything, mock.MatchedBy(func(p *domain.UserProgress) bool {
		return p.ID == "p-1" && p.CurrentStudyStreak == 1 && p.LongestStudyStreak == 9
	})).Return(nil).Once()

	require.NoError(t, agg.Recompute(context.Background(), "user-1"))
	progress.AssertExpectations(t)
}

func TestProgressAggregator_Recompute_FailuresAreAggregationErrors(t *testing.T) {
	dbErr := errors.New("ORA-12541: TNS:no listener")

	tests := []struct {
		name  string
		setup func(a *MockQuizAttemptRepository, p *MockUserProgressRepository, s *MockStudySessionRepository)
	}{
		{
			name: "load progress",
			setup: func(a *MockQuizAttemptRepository, p *MockUserProgressRepository, s *MockStudySessionRepository) {
				p.On("GetByUserIDForUpdate", mock.Anything, "user-1").Return(nil, dbErr)
			},
		},
		{
			name: "aggregate",
			setup: func(a *MockQuizAttemptRepository, p *MockUserProgressRepository, s *MockStudySessionRepository) {
				p.On("GetByUserIDForUpdate", mock.Anything, "user-1").Return(nil, nil)
				a.On("AggregateCompleted", mock.Anything, "user-1").Return(nil, dbErr)
			},
		},
		{
			name: "sessions",
			setup: func(a *MockQuizAttemptRepository, p *MockUserProgressRepository, s *MockStudySessionRepository) {
				p.On("GetByUserIDForUpdate", mock.Anything, "user-1").Return(nil, nil)
				a.On("AggregateCompleted", mock.Anything, "user-1").Return(&domain.AttemptAggregate{}, nil)
				s.On("ListSessionDates", mock.Anything, "user-1").Return(nil, dbErr)
			},
		},
		{
			name: "save",
			setup: func(a *MockQuizAttemptRepository, p *MockUserProgressRepository, s *MockStudySessionRepository) {
				p.On("GetByUserIDForUpdate", mock.Anything, "user-1").Return(nil, nil)
				a.On("AggregateCompleted", mock.Anything, "user-1").Return(&domain.AttemptAggregate{}, nil)
				s.On("ListSessionDates", mock.Anything, "user-1").Return([]time.Time{}, nil)
				p.On("SaveProgress", mock.Anything, mock.Anything).Return(dbErr)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			attempts := new(MockQuizAttemptRepository)
			progress := new(MockUserProgressRepository)
			sessions := new(MockStudySessionRepository)
			tt.setup(attempts, progress, sessions)

			err := newTestAggregator(attempts, progress, sessions).Recompute(context.Background(), "user-1")
			require.Error(t, err)
			assert.True(t, domain.IsCode(err, domain.CodeAggregation))
			assert.ErrorIs(t, err, dbErr)
		})
	}
}

func TestProgressAggregator_GetStatistics_NoAttempts(t *testing.T) {
	attempts := new(MockQuizAttemptRepository)
	progress := new(MockUserProgressRepository)
	agg := newTestAggregator(attempts, progress, new(MockStudySessionRepository))

	progress.On("GetByUserID", mock.Anything, "user-1").Return(nil, nil).Once()
	attempts.On("GetFavoriteChapterTitle", mock.Anything, "user-1").Return(nil, nil).Once()
	attempts.On("CountRecentCompleted", mock.Anything, "user-1", RecentAttemptsWindow).Return(0, nil).Once()

	view, err := agg.GetStatistics(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, domain.StatsView{}, *view)
	assert.Nil(t, view.FavoriteChapter)
}

func TestProgressAggregator_GetStatistics(t *testing.T) {
	attempts := new(MockQuizAttemptRepository)
	progress := new(MockUserProgressRepository)
	agg := newTestAggregator(attempts, progress, new(MockStudySessionRepository))

	studied := testNow.Add(-time.Hour)
	progress.On("GetByUserID", mock.Anything, "user-1").Return(&domain.UserProgress{
		UserID: "user-1", TotalQuizAttempts: 3, TotalQuestionsAnswered: 30, TotalCorrectAnswers: 20,
		AverageScore: 66.66666, BestScore: 83.33333, CurrentStudyStreak: 2, LongestStudyStreak: 4,
		LastStudyDate: &studied,
	}, nil).Once()
	attempts.On("GetFavoriteChapterTitle", mock.Anything, "user-1").Return(strPtr("Canadian Symbols"), nil).Once()
	attempts.On("CountRecentCompleted", mock.Anything, "user-1", RecentAttemptsWindow).Return(3, nil).Once()

	view, err := agg.GetStatistics(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, 3, view.TotalQuizAttempts)
	assert.Equal(t, 30, view.TotalQuestionsAnswered)
	assert.Equal(t, 20, view.TotalCorrectAnswers)
	assert.Equal(t, 66.7, view.AverageScore)
	assert.Equal(t, 83.3, view.BestScore)
	assert.Equal(t, 2, view.CurrentStudyStreak)
	assert.Equal(t, 4, view.LongestStudyStreak)
	assert.Equal(t, &studied, view.LastStudyDate)
	assert.Equal(t, "Canadian Symbols", *view.FavoriteChapter)
	assert.Equal(t, 3, view.RecentAttempts)
}

func TestProgressAggregator_GetStatistics_Error(t *testing.T) {
	attempts := new(MockQuizAttemptRepository)
	progress := new(MockUserProgressRepository)
	agg := newTestAggregator(attempts, progress, new(MockStudySessionRepository))

	progress.On("GetByUserID", mock.Anything, "user-1").Return(nil, nil)
	attempts.On("GetFavoriteChapterTitle", mock.Anything, "user-1").Return(nil, errors.New("db down"))
	attempts.On("CountRecentCompleted", mock.Anything, "user-1", RecentAttemptsWindow).Return(0, nil)

	_, err := agg.GetStatistics(context.Background(), "user-1")
	assert.Error(t, err)
}

func TestProgressAggregator_FavoriteChapterTieBreak(t *testing.T) {
	store := newMemStore()
	store.addUser("user-1")
	symbols := store.addChapter("ch-symbols", "Canadian Symbols")
	history := store.addChapter("ch-history", "Canada History")
	completedAt := testNow
	for _, ch := range []string{symbols.ID, history.ID, symbols.ID, history.ID} {
		chapterID := ch
		store.attempts[util.NewULID()] = domain.QuizAttempt{
			UserID: "user-1", ChapterID: &chapterID, CompletedAt: &completedAt, IsCompleted: true, ScorePercentage: 50,
		}
	}

	agg := newTestAggregator(store, store, store)
	view, err := agg.GetStatistics(context.Background(), "user-1")
	require.NoError(t, err)
	require.NotNil(t, view.FavoriteChapter)
	assert.Equal(t, "Canada History", *view.FavoriteChapter)
}

func TestProgressAggregator_GetChapterProgress(t *testing.T) {
	attempts := new(MockQuizAttemptRepository)
	agg := newTestAggregator(attempts, new(MockUserProgressRepository), new(MockStudySessionRepository))

	attempts.On("GetChapterProgress", mock.Anything, "user-1").Return([]domain.ChapterProgress{
		{ChapterID: "ch-1", ChapterTitle: "Who We Are", Attempts: 3, AverageScore: 71.43333, BestScore: 100},
	}, nil).Once()

	rows, err := agg.GetChapterProgress(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 71.4, rows[0].AverageScore)
	assert.Equal(t, 100.0, rows[0].BestScore)

	attempts.On("GetChapterProgress", mock.Anything, "user-2").Return([]domain.ChapterProgress{}, nil).Once()
	rows, err = agg.GetChapterProgress(context.Background(), "user-2")
	require.NoError(t, err)
	assert.NotNil(t, rows)
	assert.Empty(t, rows)
}
