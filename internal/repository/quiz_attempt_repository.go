package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"quiz-prep/internal/domain"
	"quiz-prep/internal/repository/models"
	"quiz-prep/internal/util"

	"github.com/jmoiron/sqlx"
)

const quizAttemptColumns = `id, user_id, quiz_type, chapter_id, total_questions, correct_answers, score_percentage, time_taken_seconds, started_at, completed_at, is_completed`

// sqlxQuizAttemptRepository implements domain.QuizAttemptRepository using sqlx.
type sqlxQuizAttemptRepository struct {
	db *sqlx.DB
}

// NewSQLXQuizAttemptRepository creates a new instance of sqlxQuizAttemptRepository.
func NewSQLXQuizAttemptRepository(db *sqlx.DB) domain.QuizAttemptRepository {
	return &sqlxQuizAttemptRepository{db: db}
}

func toDomainQuizAttempt(m *models.QuizAttempt) *domain.QuizAttempt {
	if m == nil {
		return nil
	}
	return &domain.QuizAttempt{
		ID:               m.ID,
		UserID:           m.UserID,
		QuizType:         m.QuizType,
		ChapterID:        util.NullStringToStringPtr(m.ChapterID),
		TotalQuestions:   m.TotalQuestions,
		CorrectAnswers:   m.CorrectAnswers,
		ScorePercentage:  m.ScorePercentage,
		TimeTakenSeconds: util.NullInt64ToIntPtr(m.TimeTakenSeconds),
		StartedAt:        m.StartedAt,
		CompletedAt:      util.NullTimeToTimePtr(m.CompletedAt),
		IsCompleted:      m.IsCompleted == 1,
	}
}

func fromDomainQuizAttempt(a *domain.QuizAttempt) *models.QuizAttempt {
	if a == nil {
		return nil
	}
	return &models.QuizAttempt{
		ID:               a.ID,
		UserID:           a.UserID,
		QuizType:         a.QuizType,
		ChapterID:        util.StringPtrToNullString(a.ChapterID),
		TotalQuestions:   a.TotalQuestions,
		CorrectAnswers:   a.CorrectAnswers,
		ScorePercentage:  a.ScorePercentage,
		TimeTakenSeconds: util.IntPtrToNullInt64(a.TimeTakenSeconds),
		StartedAt:        a.StartedAt.UTC(),
		CompletedAt:      util.TimePtrToNullTime(utcPtr(a.CompletedAt)),
		IsCompleted:      util.BoolToNumber(a.IsCompleted),
	}
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}

// CreateAttempt inserts a new attempt, assigning an ID when missing.
func (r *sqlxQuizAttemptRepository) CreateAttempt(ctx context.Context, attempt *domain.QuizAttempt) error {
	if attempt.ID == "" {
		attempt.ID = util.NewULID()
	}
	m := fromDomainQuizAttempt(attempt)
	query := `INSERT INTO quiz_attempts (` + quizAttemptColumns + `)
	          VALUES (:1, :2, :3, :4, :5, :6, :7, :8, :9, :10, :11)`
	_, err := GetExecutor(ctx, r.db).ExecContext(ctx, query,
		m.ID, m.UserID, m.QuizType, m.ChapterID, m.TotalQuestions, m.CorrectAnswers,
		m.ScorePercentage, m.TimeTakenSeconds, m.StartedAt, m.CompletedAt, m.IsCompleted)
	if err != nil {
		return fmt.Errorf("failed to create quiz attempt: %w", err)
	}
	return nil
}

func (r *sqlxQuizAttemptRepository) getAttempt(ctx context.Context, query, attemptID string) (*domain.QuizAttempt, error) {
	var m models.QuizAttempt
	if err := GetExecutor(ctx, r.db).GetContext(ctx, &m, query, attemptID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get quiz attempt %s: %w", attemptID, err)
	}
	return toDomainQuizAttempt(&m), nil
}

func (r *sqlxQuizAttemptRepository) GetAttemptByID(ctx context.Context, attemptID string) (*domain.QuizAttempt, error) {
	return r.getAttempt(ctx, `SELECT `+quizAttemptColumns+` FROM quiz_attempts WHERE id = :1`, attemptID)
}

func (r *sqlxQuizAttemptRepository) GetAttemptByIDForUpdate(ctx context.Context, attemptID string) (*domain.QuizAttempt, error) {
	return r.getAttempt(ctx, `SELECT `+quizAttemptColumns+` FROM quiz_attempts WHERE id = :1 FOR UPDATE`, attemptID)
}

// UpdateAttempt writes the finalized totals of an attempt.
func (r *sqlxQuizAttemptRepository) UpdateAttempt(ctx context.Context, attempt *domain.QuizAttempt) error {
	m := fromDomainQuizAttempt(attempt)
	query := `UPDATE quiz_attempts
	          SET total_questions = :1, correct_answers = :2, score_percentage = :3,
	              time_taken_seconds = :4, completed_at = :5, is_completed = :6
	          WHERE id = :7`
	result, err := GetExecutor(ctx, r.db).ExecContext(ctx, query,
		m.TotalQuestions, m.CorrectAnswers, m.ScorePercentage, m.TimeTakenSeconds,
		m.CompletedAt, m.IsCompleted, m.ID)
	if err != nil {
		return fmt.Errorf("failed to update quiz attempt: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected for quiz attempt update: %w", err)
	}
	if rows == 0 {
		return domain.NewAttemptNotFoundError(attempt.ID)
	}
	return nil
}

// AggregateCompleted rolls up all completed attempts of the user, with zero defaults.
func (r *sqlxQuizAttemptRepository) AggregateCompleted(ctx context.Context, userID string) (*domain.AttemptAggregate, error) {
	var m models.AttemptAggregate
	query := `SELECT COUNT(*) AS completed_attempts,
	                 NVL(SUM(total_questions), 0) AS total_questions,
	                 NVL(SUM(correct_answers), 0) AS total_correct,
	                 NVL(AVG(score_percentage), 0) AS average_score,
	                 NVL(MAX(score_percentage), 0) AS best_score
	          FROM quiz_attempts
	          WHERE user_id = :1 AND is_completed = 1`
	if err := GetExecutor(ctx, r.db).GetContext(ctx, &m, query, userID); err != nil {
		return nil, fmt.Errorf("failed to aggregate quiz attempts: %w", err)
	}
	return &domain.AttemptAggregate{
		CompletedAttempts: m.CompletedAttempts,
		TotalQuestions:    m.TotalQuestions,
		TotalCorrect:      m.TotalCorrect,
		AverageScore:      m.AverageScore,
		BestScore:         m.BestScore,
	}, nil
}

func (r *sqlxQuizAttemptRepository) CountCompletedSince(ctx context.Context, userID string, since *time.Time) (int, error) {
	var (
		count int
		err   error
	)
	exec := GetExecutor(ctx, r.db)
	if since == nil {
		err = exec.GetContext(ctx, &count,
			`SELECT COUNT(*) FROM quiz_attempts WHERE user_id = :1 AND is_completed = 1`, userID)
	} else {
		err = exec.GetContext(ctx, &count,
			`SELECT COUNT(*) FROM quiz_attempts WHERE user_id = :1 AND is_completed = 1 AND completed_at >= :2`,
			userID, since.UTC())
	}
	if err != nil {
		return 0, fmt.Errorf("failed to count completed quiz attempts: %w", err)
	}
	return count, nil
}

func (r *sqlxQuizAttemptRepository) CountRecentCompleted(ctx context.Context, userID string, limit int) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM (
	              SELECT id FROM quiz_attempts
	              WHERE user_id = :1 AND is_completed = 1
	              ORDER BY completed_at DESC
	              FETCH FIRST :2 ROWS ONLY)`
	if err := GetExecutor(ctx, r.db).GetContext(ctx, &count, query, userID, limit); err != nil {
		return 0, fmt.Errorf("failed to count recent quiz attempts: %w", err)
	}
	return count, nil
}

func (r *sqlxQuizAttemptRepository) GetFavoriteChapterTitle(ctx context.Context, userID string) (*string, error) {
	var title string
	query := `SELECT c.title
	          FROM quiz_attempts qa
	          JOIN chapters c ON c.id = qa.chapter_id
	          WHERE qa.user_id = :1 AND qa.is_completed = 1
	          GROUP BY c.title
	          ORDER BY COUNT(*) DESC, c.title ASC
	          FETCH FIRST 1 ROWS ONLY`
	if err := GetExecutor(ctx, r.db).GetContext(ctx, &title, query, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get favorite chapter: %w", err)
	}
	return &title, nil
}

func (r *sqlxQuizAttemptRepository) GetChapterProgress(ctx context.Context, userID string) ([]domain.ChapterProgress, error) {
	progress := []domain.ChapterProgress{}
	query := `SELECT c.id AS chapter_id,
	                 c.title AS chapter_title,
	                 COUNT(qa.id) AS attempts,
	                 NVL(AVG(qa.score_percentage), 0) AS average_score,
	                 NVL(MAX(qa.score_percentage), 0) AS best_score
	          FROM chapters c
	          JOIN quiz_attempts qa ON qa.chapter_id = c.id
	          WHERE qa.user_id = :1 AND qa.is_completed = 1
	          GROUP BY c.id, c.title, c.display_order
	          ORDER BY c.display_order, c.title`
	if err := GetExecutor(ctx, r.db).SelectContext(ctx, &progress, query, userID); err != nil {
		return nil, fmt.Errorf("failed to get chapter progress: %w", err)
	}
	return progress, nil
}
