package repository

import (
	"context"
	"fmt"

	"quiz-prep/internal/domain"
	"quiz-prep/internal/repository/models"
	"quiz-prep/internal/util"

	"github.com/jmoiron/sqlx"
)

const questionAttemptColumns = `id, quiz_attempt_id, flashcard_id, question_text, question_type, correct_answer, user_answer, is_correct, time_taken_seconds, answered_at`

type sqlxQuestionAttemptRepository struct {
	db *sqlx.DB
}

func NewSQLXQuestionAttemptRepository(db *sqlx.DB) domain.QuestionAttemptRepository {
	return &sqlxQuestionAttemptRepository{db: db}
}

// CreateQuestionAttempt appends an answered question. Rows are never updated.
func (r *sqlxQuestionAttemptRepository) CreateQuestionAttempt(ctx context.Context, qa *domain.QuestionAttempt) error {
	if qa.ID == "" {
		qa.ID = util.NewULID()
	}
	query := `INSERT INTO question_attempts (` + questionAttemptColumns + `)
	          VALUES (:1, :2, :3, :4, :5, :6, :7, :8, :9, :10)`
	_, err := GetExecutor(ctx, r.db).ExecContext(ctx, query,
		qa.ID, qa.QuizAttemptID, util.StringPtrToNullString(qa.FlashcardID), qa.QuestionText, qa.QuestionType,
		qa.CorrectAnswer, util.StringToNullString(qa.UserAnswer), util.BoolToNumber(qa.IsCorrect),
		util.IntPtrToNullInt64(qa.TimeTakenSeconds), qa.AnsweredAt.UTC())
	if err != nil {
		return fmt.Errorf("failed to create question attempt: %w", err)
	}
	return nil
}

func (r *sqlxQuestionAttemptRepository) GetByAttemptID(ctx context.Context, attemptID string) ([]domain.QuestionAttempt, error) {
	var rows []models.QuestionAttempt
	query := `SELECT ` + questionAttemptColumns + ` FROM question_attempts WHERE quiz_attempt_id = :1 ORDER BY answered_at, id`
	if err := GetExecutor(ctx, r.db).SelectContext(ctx, &rows, query, attemptID); err != nil {
		return nil, fmt.Errorf("failed to list question attempts for %s: %w", attemptID, err)
	}

	answers := make([]domain.QuestionAttempt, 0, len(rows))
	for _, m := range rows {
		answers = append(answers, domain.QuestionAttempt{
			ID:               m.ID,
			QuizAttemptID:    m.QuizAttemptID,
			FlashcardID:      util.NullStringToStringPtr(m.FlashcardID),
			QuestionText:     m.QuestionText,
			QuestionType:     m.QuestionType,
			CorrectAnswer:    m.CorrectAnswer,
			UserAnswer:       m.UserAnswer.String,
			IsCorrect:        m.IsCorrect == 1,
			TimeTakenSeconds: util.NullInt64ToIntPtr(m.TimeTakenSeconds),
			AnsweredAt:       m.AnsweredAt,
		})
	}
	return answers, nil
}
