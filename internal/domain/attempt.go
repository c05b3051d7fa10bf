package domain

import (
	"context"
	"time"
)

// Question types accepted for a recorded answer.
const (
	QuestionTypeMultipleChoice = "multiple_choice"
	QuestionTypeTrueFalse      = "true_false"
	QuestionTypeShortAnswer    = "short_answer"
)

// MaxQuizTypeLength bounds the free-form quiz_type tag.
const MaxQuizTypeLength = 50

// QuizAttempt is one quiz-taking session. Its totals are provisional (zero) until
// Finalize recomputes them from the recorded answers.
type QuizAttempt struct {
	ID               string
	UserID           string
	QuizType         string
	ChapterID        *string
	TotalQuestions   int
	CorrectAnswers   int
	ScorePercentage  float64
	TimeTakenSeconds *int
	StartedAt        time.Time
	CompletedAt      *time.Time
	IsCompleted      bool
}

// NewQuizAttempt opens an attempt with zeroed totals.
func NewQuizAttempt(userID, quizType string, chapterID *string, now time.Time) *QuizAttempt {
	return &QuizAttempt{
		UserID:    userID,
		QuizType:  quizType,
		ChapterID: chapterID,
		StartedAt: now,
	}
}

// Finalize recomputes the totals from answers and marks the attempt completed.
// Calling it again with the same answers yields the same totals. A nil
// totalTimeSeconds keeps any previously recorded time.
func (a *QuizAttempt) Finalize(answers []QuestionAttempt, totalTimeSeconds *int, now time.Time) {
	correct := 0
	for _, ans := range answers {
		if ans.IsCorrect {
			correct++
		}
	}
	a.TotalQuestions = len(answers)
	a.CorrectAnswers = correct
	a.ScorePercentage = ScorePercentage(correct, len(answers))
	if totalTimeSeconds != nil {
		a.TimeTakenSeconds = totalTimeSeconds
	}
	completedAt := now
	a.CompletedAt = &completedAt
	a.IsCompleted = true
}

// ScorePercentage returns correct/total*100, or 0 when total is 0.
func ScorePercentage(correct, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(correct) / float64(total) * 100
}

// QuestionAttempt is one answered question. The question fields are a snapshot taken
// at answer time and never change afterwards.
type QuestionAttempt struct {
	ID               string
	QuizAttemptID    string
	FlashcardID      *string
	QuestionText     string
	QuestionType     string
	CorrectAnswer    string
	UserAnswer       string
	IsCorrect        bool
	TimeTakenSeconds *int
	AnsweredAt       time.Time
}

// AnswerRecord is the structured payload for recording one answer.
type AnswerRecord struct {
	FlashcardID      *string `validate:"omitempty,ulid"`
	QuestionText     string  `validate:"required,max=4000"`
	QuestionType     string  `validate:"required,oneof=multiple_choice true_false short_answer"`
	CorrectAnswer    string  `validate:"required,max=4000"`
	UserAnswer       string  `validate:"max=4000"`
	IsCorrect        bool
	TimeTakenSeconds *int `validate:"omitempty,gte=0"`
}

// NewQuestionAttempt snapshots record under attemptID.
func NewQuestionAttempt(attemptID string, record AnswerRecord, now time.Time) *QuestionAttempt {
	return &QuestionAttempt{
		QuizAttemptID:    attemptID,
		FlashcardID:      record.FlashcardID,
		QuestionText:     record.QuestionText,
		QuestionType:     record.QuestionType,
		CorrectAnswer:    record.CorrectAnswer,
		UserAnswer:       record.UserAnswer,
		IsCorrect:        record.IsCorrect,
		TimeTakenSeconds: record.TimeTakenSeconds,
		AnsweredAt:       now,
	}
}

// AttemptAggregate holds the rollup over a user's completed attempts.
type AttemptAggregate struct {
	CompletedAttempts int
	TotalQuestions    int
	TotalCorrect      int
	AverageScore      float64
	BestScore         float64
}

// QuizAttemptRepository defines persistence for quiz attempts.
type QuizAttemptRepository interface {
	CreateAttempt(ctx context.Context, attempt *QuizAttempt) error
	GetAttemptByID(ctx context.Context, attemptID string) (*QuizAttempt, error)
	// GetAttemptByIDForUpdate locks the row for the rest of the transaction.
	GetAttemptByIDForUpdate(ctx context.Context, attemptID string) (*QuizAttempt, error)
	UpdateAttempt(ctx context.Context, attempt *QuizAttempt) error
	AggregateCompleted(ctx context.Context, userID string) (*AttemptAggregate, error)
	// CountCompletedSince counts completed attempts with completed_at >= since, or all of
	// them when since is nil.
	CountCompletedSince(ctx context.Context, userID string, since *time.Time) (int, error)
	CountRecentCompleted(ctx context.Context, userID string, limit int) (int, error)
	// GetFavoriteChapterTitle returns the title of the chapter with the most completed
	// attempts, ties broken by title. It returns nil when no chapter attempt exists.
	GetFavoriteChapterTitle(ctx context.Context, userID string) (*string, error)
	GetChapterProgress(ctx context.Context, userID string) ([]ChapterProgress, error)
}

// QuestionAttemptRepository defines persistence for answered questions.
type QuestionAttemptRepository interface {
	CreateQuestionAttempt(ctx context.Context, qa *QuestionAttempt) error
	GetByAttemptID(ctx context.Context, attemptID string) ([]QuestionAttempt, error)
}
