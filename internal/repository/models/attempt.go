package models

import (
	"database/sql"
	"time"
)

// QuizAttempt maps the quiz_attempts table. IsCompleted is NUMBER(1).
type QuizAttempt struct {
	ID               string         `db:"ID"`
	UserID           string         `db:"USER_ID"`
	QuizType         string         `db:"QUIZ_TYPE"`
	ChapterID        sql.NullString `db:"CHAPTER_ID"`
	TotalQuestions   int            `db:"TOTAL_QUESTIONS"`
	CorrectAnswers   int            `db:"CORRECT_ANSWERS"`
	ScorePercentage  float64        `db:"SCORE_PERCENTAGE"`
	TimeTakenSeconds sql.NullInt64  `db:"TIME_TAKEN_SECONDS"`
	StartedAt        time.Time      `db:"STARTED_AT"`
	CompletedAt      sql.NullTime   `db:"COMPLETED_AT"`
	IsCompleted      int            `db:"IS_COMPLETED"`
}

func (QuizAttempt) TableName() string {
	return "quiz_attempts"
}

// QuestionAttempt maps the question_attempts table.
type QuestionAttempt struct {
	ID               string         `db:"ID"`
	QuizAttemptID    string         `db:"QUIZ_ATTEMPT_ID"`
	FlashcardID      sql.NullString `db:"FLASHCARD_ID"`
	QuestionText     string         `db:"QUESTION_TEXT"`
	QuestionType     string         `db:"QUESTION_TYPE"`
	CorrectAnswer    string         `db:"CORRECT_ANSWER"`
	UserAnswer       sql.NullString `db:"USER_ANSWER"`
	IsCorrect        int            `db:"IS_CORRECT"`
	TimeTakenSeconds sql.NullInt64  `db:"TIME_TAKEN_SECONDS"`
	AnsweredAt       time.Time      `db:"ANSWERED_AT"`
}

func (QuestionAttempt) TableName() string {
	return "question_attempts"
}

// AttemptAggregate is the row of the completed-attempt rollup query.
type AttemptAggregate struct {
	CompletedAttempts int     `db:"COMPLETED_ATTEMPTS"`
	TotalQuestions    int     `db:"TOTAL_QUESTIONS"`
	TotalCorrect      int     `db:"TOTAL_CORRECT"`
	AverageScore      float64 `db:"AVERAGE_SCORE"`
	BestScore         float64 `db:"BEST_SCORE"`
}
