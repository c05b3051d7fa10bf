package service

import (
	"context"
	"fmt"
	"time"

	"quiz-prep/internal/domain"
	"quiz-prep/internal/logger"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// RecentAttemptsWindow is how many of the latest completed attempts the statistics view counts.
const RecentAttemptsWindow = 10

// ProgressAggregator maintains the per-user rollup and serves the statistics read model.
type ProgressAggregator interface {
	// Recompute rebuilds the user's rollup from all completed attempts and study sessions.
	// Run it inside the transaction that completed the attempt.
	Recompute(ctx context.Context, userID string) error
	GetStatistics(ctx context.Context, userID string) (*domain.StatsView, error)
	GetChapterProgress(ctx context.Context, userID string) ([]domain.ChapterProgress, error)
}

type progressAggregatorImpl struct {
	attemptRepo  domain.QuizAttemptRepository
	progressRepo domain.UserProgressRepository
	sessionRepo  domain.StudySessionRepository
	now          func() time.Time
}

// NewProgressAggregator creates a new instance of ProgressAggregator.
func NewProgressAggregator(
	attemptRepo domain.QuizAttemptRepository,
	progressRepo domain.UserProgressRepository,
	sessionRepo domain.StudySessionRepository,
) ProgressAggregator {
	return &progressAggregatorImpl{
		attemptRepo:  attemptRepo,
		progressRepo: progressRepo,
		sessionRepo:  sessionRepo,
		now:          utcNow,
	}
}

func (s *progressAggregatorImpl) Recompute(ctx context.Context, userID string) error {
	now := s.now()

	progress, err := s.progressRepo.GetByUserIDForUpdate(ctx, userID)
	if err != nil {
		return domain.NewAggregationError(userID, fmt.Errorf("load progress: %w", err))
	}
	if progress == nil {
		progress = domain.NewUserProgress(userID, now)
	}

	agg, err := s.attemptRepo.AggregateCompleted(ctx, userID)
	if err != nil {
		return domain.NewAggregationError(userID, fmt.Errorf("aggregate attempts: %w", err))
	}

	dates, err := s.sessionRepo.ListSessionDates(ctx, userID)
	if err != nil {
		return domain.NewAggregationError(userID, fmt.Errorf("list study sessions: %w", err))
	}

	progress.Apply(*agg, CalculateStudyStreak(dates, now), now)

	if err := s.progressRepo.SaveProgress(ctx, progress); err != nil {
		return domain.NewAggregationError(userID, fmt.Errorf("save progress: %w", err))
	}

	logger.Get().Debug("Recomputed user progress",
		zap.String("userID", userID),
		zap.Int("totalQuizAttempts", progress.TotalQuizAttempts),
		zap.Int("currentStreak", progress.CurrentStudyStreak))
	return nil
}

func (s *progressAggregatorImpl) GetStatistics(ctx context.Context, userID string) (*domain.StatsView, error) {
	var (
		progress *domain.UserProgress
		favorite *string
		recent   int
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		progress, err = s.progressRepo.GetByUserID(gctx, userID)
		if err != nil {
			return fmt.Errorf("failed to get user progress: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		favorite, err = s.attemptRepo.GetFavoriteChapterTitle(gctx, userID)
		if err != nil {
			return fmt.Errorf("failed to get favorite chapter: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		recent, err = s.attemptRepo.CountRecentCompleted(gctx, userID, RecentAttemptsWindow)
		if err != nil {
			return fmt.Errorf("failed to count recent attempts: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	view := &domain.StatsView{
		FavoriteChapter: favorite,
		RecentAttempts:  recent,
	}
	if progress != nil {
		view.TotalQuizAttempts = progress.TotalQuizAttempts
		view.TotalQuestionsAnswered = progress.TotalQuestionsAnswered
		view.TotalCorrectAnswers = progress.TotalCorrectAnswers
		view.AverageScore = domain.RoundScore(progress.AverageScore)
		view.BestScore = domain.RoundScore(progress.BestScore)
		view.CurrentStudyStreak = progress.CurrentStudyStreak
		view.LongestStudyStreak = progress.LongestStudyStreak
		view.LastStudyDate = progress.LastStudyDate
	}
	return view, nil
}

func (s *progressAggregatorImpl) GetChapterProgress(ctx context.Context, userID string) ([]domain.ChapterProgress, error) {
	rows, err := s.attemptRepo.GetChapterProgress(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get chapter progress: %w", err)
	}
	out := make([]domain.ChapterProgress, 0, len(rows))
	for _, r := range rows {
		r.AverageScore = domain.RoundScore(r.AverageScore)
		r.BestScore = domain.RoundScore(r.BestScore)
		out = append(out, r)
	}
	return out, nil
}
