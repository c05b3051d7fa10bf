package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"quiz-prep/internal/domain"
	"quiz-prep/internal/logger"
	"quiz-prep/internal/util"
	"quiz-prep/internal/validation"

	"go.uber.org/zap"
)

// AttemptTracker manages the lifecycle of a quiz attempt.
type AttemptTracker interface {
	// Start opens an attempt and counts it in today's study session.
	Start(ctx context.Context, userID, quizType string, chapterID *string) (string, error)
	// StartGated consults the tier gate and starts the attempt only when allowed. A
	// refused start returns a LIMIT_REACHED error together with the gate's status.
	StartGated(ctx context.Context, userID, quizType string, chapterID *string) (string, *domain.QuizLimitStatus, error)
	RecordAnswer(ctx context.Context, attemptID string, record domain.AnswerRecord) error
	// Complete recomputes the attempt's totals from its answers and refreshes the
	// user's progress in the same transaction. Completing twice yields the same totals.
	Complete(ctx context.Context, attemptID string, totalTimeSeconds *int) (*domain.QuizAttempt, error)
	Get(ctx context.Context, attemptID string) (*domain.QuizAttempt, error)
}

type attemptTrackerImpl struct {
	txManager    domain.TransactionManager
	userRepo     domain.UserRepository
	attemptRepo  domain.QuizAttemptRepository
	questionRepo domain.QuestionAttemptRepository
	sessionRepo  domain.StudySessionRepository
	aggregator   ProgressAggregator
	gate         TierGate
	stats        StatsService
	catalog      *ChapterCatalog
	validator    *validation.Validator
	now          func() time.Time
}

// NewAttemptTracker creates a new instance of AttemptTracker. stats may be nil.
func NewAttemptTracker(
	txManager domain.TransactionManager,
	userRepo domain.UserRepository,
	attemptRepo domain.QuizAttemptRepository,
	questionRepo domain.QuestionAttemptRepository,
	sessionRepo domain.StudySessionRepository,
	aggregator ProgressAggregator,
	gate TierGate,
	stats StatsService,
	catalog *ChapterCatalog,
) AttemptTracker {
	return &attemptTrackerImpl{
		txManager:    txManager,
		userRepo:     userRepo,
		attemptRepo:  attemptRepo,
		questionRepo: questionRepo,
		sessionRepo:  sessionRepo,
		aggregator:   aggregator,
		gate:         gate,
		stats:        stats,
		catalog:      catalog,
		validator:    validation.NewValidator(),
		now:          utcNow,
	}
}

func (s *attemptTrackerImpl) Start(ctx context.Context, userID, quizType string, chapterID *string) (string, error) {
	if errs := s.validator.ValidateQuizType(quizType); errs != nil {
		return "", errs
	}
	quizType = strings.TrimSpace(quizType)

	if chapterID != nil && *chapterID == "" {
		chapterID = nil
	}
	if chapterID != nil && !s.catalog.Has(*chapterID) {
		return "", domain.NewChapterNotFoundError(*chapterID)
	}

	now := s.now()
	attempt := domain.NewQuizAttempt(userID, quizType, chapterID, now)

	err := s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		user, err := s.userRepo.GetUserByID(txCtx, userID)
		if err != nil {
			return fmt.Errorf("failed to get user: %w", err)
		}
		if user == nil {
			return domain.NewUserNotFoundError(userID)
		}
		if err := s.attemptRepo.CreateAttempt(txCtx, attempt); err != nil {
			return err
		}
		if err := s.sessionRepo.RecordAttemptStart(txCtx, userID, util.StartOfDayUTC(now)); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return "", err
	}

	logger.Get().Info("Quiz attempt started",
		zap.String("attemptID", attempt.ID),
		zap.String("userID", userID),
		zap.String("quizType", quizType))
	return attempt.ID, nil
}

func (s *attemptTrackerImpl) StartGated(ctx context.Context, userID, quizType string, chapterID *string) (string, *domain.QuizLimitStatus, error) {
	status, err := s.gate.CheckUser(ctx, userID)
	if err != nil {
		return "", nil, err
	}
	if !status.Allowed {
		return "", status, domain.NewLimitReachedError(status.Message, status.Completed, status.Limit)
	}
	attemptID, err := s.Start(ctx, userID, quizType, chapterID)
	if err != nil {
		return "", status, err
	}
	return attemptID, status, nil
}

func (s *attemptTrackerImpl) RecordAnswer(ctx context.Context, attemptID string, record domain.AnswerRecord) error {
	if errs := s.validator.Struct(record); errs != nil {
		return errs
	}

	return s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		attempt, err := s.attemptRepo.GetAttemptByIDForUpdate(txCtx, attemptID)
		if err != nil {
			return err
		}
		if attempt == nil {
			return domain.NewAttemptNotFoundError(attemptID)
		}
		if attempt.IsCompleted {
			return domain.NewConflictError("quiz attempt is already completed").
				WithContext("attempt_id", attemptID)
		}
		qa := domain.NewQuestionAttempt(attemptID, record, s.now())
		return s.questionRepo.CreateQuestionAttempt(txCtx, qa)
	})
}

func (s *attemptTrackerImpl) Complete(ctx context.Context, attemptID string, totalTimeSeconds *int) (*domain.QuizAttempt, error) {
	if totalTimeSeconds != nil && *totalTimeSeconds < 0 {
		return nil, domain.ValidationErrors{domain.ValidationError{
			Field:   "total_time_seconds",
			Code:    domain.CodeOutOfRange,
			Message: "field must be at least 0",
			Value:   *totalTimeSeconds,
		}}
	}

	var completed *domain.QuizAttempt
	err := s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		attempt, err := s.attemptRepo.GetAttemptByIDForUpdate(txCtx, attemptID)
		if err != nil {
			return err
		}
		if attempt == nil {
			return domain.NewAttemptNotFoundError(attemptID)
		}
		wasCompleted := attempt.IsCompleted

		answers, err := s.questionRepo.GetByAttemptID(txCtx, attemptID)
		if err != nil {
			return err
		}
		attempt.Finalize(answers, totalTimeSeconds, s.now())
		if err := s.attemptRepo.UpdateAttempt(txCtx, attempt); err != nil {
			return err
		}

		// Session totals are added once; a repeated completion only recomputes.
		if !wasCompleted {
			duration := 0
			if attempt.TimeTakenSeconds != nil {
				duration = *attempt.TimeTakenSeconds
			}
			if err := s.sessionRepo.AddCompletedTotals(txCtx, attempt.UserID, util.StartOfDayUTC(attempt.StartedAt),
				attempt.TotalQuestions, attempt.CorrectAnswers, duration); err != nil {
				return err
			}
		}

		if err := s.aggregator.Recompute(txCtx, attempt.UserID); err != nil {
			return err
		}
		completed = attempt
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.stats != nil {
		s.stats.Invalidate(ctx, completed.UserID)
	}

	logger.Get().Info("Quiz attempt completed",
		zap.String("attemptID", completed.ID),
		zap.String("userID", completed.UserID),
		zap.Int("totalQuestions", completed.TotalQuestions),
		zap.Int("correctAnswers", completed.CorrectAnswers),
		zap.Float64("scorePercentage", completed.ScorePercentage))
	return completed, nil
}

func (s *attemptTrackerImpl) Get(ctx context.Context, attemptID string) (*domain.QuizAttempt, error) {
	attempt, err := s.attemptRepo.GetAttemptByID(ctx, attemptID)
	if err != nil {
		return nil, err
	}
	if attempt == nil {
		return nil, domain.NewAttemptNotFoundError(attemptID)
	}
	return attempt, nil
}
