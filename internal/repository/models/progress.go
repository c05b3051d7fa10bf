package models

import (
	"database/sql"
	"time"
)

// UserProgress maps the user_progress table.
type UserProgress struct {
	ID                     string       `db:"ID"`
	UserID                 string       `db:"USER_ID"`
	TotalQuizAttempts      int          `db:"TOTAL_QUIZ_ATTEMPTS"`
	TotalQuestionsAnswered int          `db:"TOTAL_QUESTIONS_ANSWERED"`
	TotalCorrectAnswers    int          `db:"TOTAL_CORRECT_ANSWERS"`
	AverageScore           float64      `db:"AVERAGE_SCORE"`
	BestScore              float64      `db:"BEST_SCORE"`
	CurrentStudyStreak     int          `db:"CURRENT_STUDY_STREAK"`
	LongestStudyStreak     int          `db:"LONGEST_STUDY_STREAK"`
	LastStudyDate          sql.NullTime `db:"LAST_STUDY_DATE"`
	CreatedAt              time.Time    `db:"CREATED_AT"`
	UpdatedAt              time.Time    `db:"UPDATED_AT"`
}

func (UserProgress) TableName() string {
	return "user_progress"
}

// StudySession maps the study_sessions table. SessionDate is an Oracle DATE holding a
// UTC calendar day.
type StudySession struct {
	ID                     string    `db:"ID"`
	UserID                 string    `db:"USER_ID"`
	SessionDate            time.Time `db:"SESSION_DATE"`
	QuizAttemptsCount      int       `db:"QUIZ_ATTEMPTS_COUNT"`
	TotalQuestions         int       `db:"TOTAL_QUESTIONS"`
	TotalCorrect           int       `db:"TOTAL_CORRECT"`
	SessionDurationSeconds int       `db:"SESSION_DURATION_SECONDS"`
	CreatedAt              time.Time `db:"CREATED_AT"`
	UpdatedAt              time.Time `db:"UPDATED_AT"`
}

func (StudySession) TableName() string {
	return "study_sessions"
}
