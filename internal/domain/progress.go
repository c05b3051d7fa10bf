package domain

import (
	"context"
	"math"
	"time"
)

// UserProgress is the per-user rollup. Everything except LongestStudyStreak can be
// rebuilt from completed attempts and study sessions.
type UserProgress struct {
	ID                     string
	UserID                 string
	TotalQuizAttempts      int
	TotalQuestionsAnswered int
	TotalCorrectAnswers    int
	AverageScore           float64
	BestScore              float64
	CurrentStudyStreak     int
	LongestStudyStreak     int
	LastStudyDate          *time.Time
	CreatedAt              time.Time
	UpdatedAt              time.Time
}

// NewUserProgress returns an empty rollup for userID.
func NewUserProgress(userID string, now time.Time) *UserProgress {
	return &UserProgress{
		UserID:    userID,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Apply overwrites the rollup with a fresh aggregate and streak. The longest streak is a
// high-water mark and never decreases.
func (p *UserProgress) Apply(agg AttemptAggregate, streak int, now time.Time) {
	p.TotalQuizAttempts = agg.CompletedAttempts
	p.TotalQuestionsAnswered = agg.TotalQuestions
	p.TotalCorrectAnswers = agg.TotalCorrect
	p.AverageScore = agg.AverageScore
	p.BestScore = agg.BestScore
	p.CurrentStudyStreak = streak
	if streak > p.LongestStudyStreak {
		p.LongestStudyStreak = streak
	}
	studied := now
	p.LastStudyDate = &studied
	p.UpdatedAt = now
}

// StudySession is one row per user per UTC calendar day with activity.
type StudySession struct {
	ID                     string
	UserID                 string
	SessionDate            time.Time
	QuizAttemptsCount      int
	TotalQuestions         int
	TotalCorrect           int
	SessionDurationSeconds int
	CreatedAt              time.Time
	UpdatedAt              time.Time
}

// StatsView is the read model returned by the statistics query.
type StatsView struct {
	TotalQuizAttempts      int        `json:"total_quiz_attempts"`
	TotalQuestionsAnswered int        `json:"total_questions_answered"`
	TotalCorrectAnswers    int        `json:"total_correct_answers"`
	AverageScore           float64    `json:"average_score"`
	BestScore              float64    `json:"best_score"`
	CurrentStudyStreak     int        `json:"current_study_streak"`
	LongestStudyStreak     int        `json:"longest_study_streak"`
	LastStudyDate          *time.Time `json:"last_study_date"`
	FavoriteChapter        *string    `json:"favorite_chapter"`
	RecentAttempts         int        `json:"recent_attempts"`
}

// ChapterProgress is the per-chapter breakdown of completed attempts.
type ChapterProgress struct {
	ChapterID    string  `json:"chapter_id" db:"CHAPTER_ID"`
	ChapterTitle string  `json:"chapter_title" db:"CHAPTER_TITLE"`
	Attempts     int     `json:"attempts" db:"ATTEMPTS"`
	AverageScore float64 `json:"average_score" db:"AVERAGE_SCORE"`
	BestScore    float64 `json:"best_score" db:"BEST_SCORE"`
}

// RoundScore rounds a percentage to one decimal place.
func RoundScore(v float64) float64 {
	return math.Round(v*10) / 10
}

// UserProgressRepository defines persistence for the rollup row.
type UserProgressRepository interface {
	GetByUserID(ctx context.Context, userID string) (*UserProgress, error)
	// GetByUserIDForUpdate locks the row for the rest of the transaction.
	GetByUserIDForUpdate(ctx context.Context, userID string) (*UserProgress, error)
	SaveProgress(ctx context.Context, progress *UserProgress) error
}

// StudySessionRepository defines persistence for daily study sessions.
type StudySessionRepository interface {
	// RecordAttemptStart upserts the session for day and increments its attempt counter.
	RecordAttemptStart(ctx context.Context, userID string, day time.Time) error
	// AddCompletedTotals adds a completed attempt's totals to an existing session row.
	AddCompletedTotals(ctx context.Context, userID string, day time.Time, questions, correct, durationSeconds int) error
	// ListSessionDates returns the session days, most recent first.
	ListSessionDates(ctx context.Context, userID string) ([]time.Time, error)
}
