package dto

import "time"

// StartAttemptRequest represents the request body for starting a quiz attempt.
// @Description Request body for starting a quiz attempt
type StartAttemptRequest struct {
	QuizType  string  `json:"quiz_type" validate:"required,max=50"`
	ChapterID *string `json:"chapter_id,omitempty" validate:"omitempty,ulid"`
}

// StartAttemptResponse is returned when an attempt has been opened.
type StartAttemptResponse struct {
	AttemptID string `json:"attempt_id"`
	Message   string `json:"message,omitempty"`
}

// RecordAnswerRequest represents one answered question.
// @Description Request body for recording an answer
type RecordAnswerRequest struct {
	FlashcardID      *string `json:"flashcard_id,omitempty" validate:"omitempty,ulid"`
	QuestionText     string  `json:"question_text" validate:"required,max=4000"`
	QuestionType     string  `json:"question_type" validate:"required,oneof=multiple_choice true_false short_answer"`
	CorrectAnswer    string  `json:"correct_answer" validate:"required,max=4000"`
	UserAnswer       string  `json:"user_answer" validate:"max=4000"`
	IsCorrect        bool    `json:"is_correct"`
	TimeTakenSeconds *int    `json:"time_taken_seconds,omitempty" validate:"omitempty,gte=0"`
}

// CompleteAttemptRequest represents the request body for completing an attempt.
type CompleteAttemptRequest struct {
	TotalTimeSeconds *int `json:"total_time_seconds,omitempty" validate:"omitempty,gte=0"`
}

// AttemptResponse is a quiz attempt as returned by the API.
// @Description Quiz attempt with its computed totals
type AttemptResponse struct {
	ID               string     `json:"id"`
	QuizType         string     `json:"quiz_type"`
	ChapterID        *string    `json:"chapter_id,omitempty"`
	TotalQuestions   int        `json:"total_questions"`
	CorrectAnswers   int        `json:"correct_answers"`
	ScorePercentage  float64    `json:"score_percentage"`
	TimeTakenSeconds *int       `json:"time_taken_seconds,omitempty"`
	StartedAt        time.Time  `json:"started_at"`
	CompletedAt      *time.Time `json:"completed_at,omitempty"`
	IsCompleted      bool       `json:"is_completed"`
}
