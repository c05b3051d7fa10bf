package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"quiz-prep/internal/domain"
	"quiz-prep/internal/repository/models"
	"quiz-prep/internal/util"

	"github.com/jmoiron/sqlx"
)

const userProgressColumns = `id, user_id, total_quiz_attempts, total_questions_answered, total_correct_answers, average_score, best_score, current_study_streak, longest_study_streak, last_study_date, created_at, updated_at`

type sqlxUserProgressRepository struct {
	db *sqlx.DB
}

func NewSQLXUserProgressRepository(db *sqlx.DB) domain.UserProgressRepository {
	return &sqlxUserProgressRepository{db: db}
}

func toDomainUserProgress(m *models.UserProgress) *domain.UserProgress {
	return &domain.UserProgress{
		ID:                     m.ID,
		UserID:                 m.UserID,
		TotalQuizAttempts:      m.TotalQuizAttempts,
		TotalQuestionsAnswered: m.TotalQuestionsAnswered,
		TotalCorrectAnswers:    m.TotalCorrectAnswers,
		AverageScore:           m.AverageScore,
		BestScore:              m.BestScore,
		CurrentStudyStreak:     m.CurrentStudyStreak,
		LongestStudyStreak:     m.LongestStudyStreak,
		LastStudyDate:          util.NullTimeToTimePtr(m.LastStudyDate),
		CreatedAt:              m.CreatedAt,
		UpdatedAt:              m.UpdatedAt,
	}
}

func (r *sqlxUserProgressRepository) get(ctx context.Context, query, userID string) (*domain.UserProgress, error) {
	var m models.UserProgress
	if err := GetExecutor(ctx, r.db).GetContext(ctx, &m, query, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user progress: %w", err)
	}
	return toDomainUserProgress(&m), nil
}

func (r *sqlxUserProgressRepository) GetByUserID(ctx context.Context, userID string) (*domain.UserProgress, error) {
	return r.get(ctx, `SELECT `+userProgressColumns+` FROM user_progress WHERE user_id = :1`, userID)
}

func (r *sqlxUserProgressRepository) GetByUserIDForUpdate(ctx context.Context, userID string) (*domain.UserProgress, error) {
	return r.get(ctx, `SELECT `+userProgressColumns+` FROM user_progress WHERE user_id = :1 FOR UPDATE`, userID)
}

// SaveProgress upserts the rollup row keyed by user_id.
func (r *sqlxUserProgressRepository) SaveProgress(ctx context.Context, p *domain.UserProgress) error {
	if p.ID == "" {
		p.ID = util.NewULID()
	}
	query := `MERGE INTO user_progress t
	          USING (SELECT :1 AS id, :2 AS user_id, :3 AS total_quiz_attempts, :4 AS total_questions_answered,
	                        :5 AS total_correct_answers, :6 AS average_score, :7 AS best_score,
	                        :8 AS current_study_streak, :9 AS longest_study_streak, :10 AS last_study_date,
	                        :11 AS created_at, :12 AS updated_at
	                 FROM dual) src
	          ON (t.user_id = src.user_id)
	          WHEN MATCHED THEN UPDATE SET
	              t.total_quiz_attempts = src.total_quiz_attempts,
	              t.total_questions_answered = src.total_questions_answered,
	              t.total_correct_answers = src.total_correct_answers,
	              t.average_score = src.average_score,
	              t.best_score = src.best_score,
	              t.current_study_streak = src.current_study_streak,
	              t.longest_study_streak = src.longest_study_streak,
	              t.last_study_date = src.last_study_date,
	              t.updated_at = src.updated_at
	          WHEN NOT MATCHED THEN INSERT (` + userProgressColumns + `)
	              VALUES (src.id, src.user_id, src.total_quiz_attempts, src.total_questions_answered,
	                      src.total_correct_answers, src.average_score, src.best_score,
	                      src.current_study_streak, src.longest_study_streak, src.last_study_date,
	                      src.created_at, src.updated_at)`
	_, err := GetExecutor(ctx, r.db).ExecContext(ctx, query,
		p.ID, p.UserID, p.TotalQuizAttempts, p.TotalQuestionsAnswered, p.TotalCorrectAnswers,
		p.AverageScore, p.BestScore, p.CurrentStudyStreak, p.LongestStudyStreak,
		util.TimePtrToNullTime(utcPtr(p.LastStudyDate)), p.CreatedAt.UTC(), p.UpdatedAt.UTC())
	if err != nil {
		return fmt.Errorf("failed to save user progress: %w", err)
	}
	return nil
}
