package repository

import (
	"context"
	"fmt"
	"time"

	"quiz-prep/internal/domain"
	"quiz-prep/internal/logger"
	"quiz-prep/internal/util"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

type sqlxStudySessionRepository struct {
	db  *sqlx.DB
	now func() time.Time
}

func NewSQLXStudySessionRepository(db *sqlx.DB) domain.StudySessionRepository {
	return &sqlxStudySessionRepository{db: db, now: time.Now}
}

// calendarDay keeps the Y-M-D of a DATE value as a UTC midnight. Drivers may attach
// the session time zone to DATE columns, which must not shift the day.
func calendarDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

const recordAttemptStartQuery = `MERGE INTO study_sessions s
	USING (SELECT :1 AS id, :2 AS user_id, CAST(:3 AS DATE) AS session_date, :4 AS ts FROM dual) src
	ON (s.user_id = src.user_id AND s.session_date = src.session_date)
	WHEN MATCHED THEN UPDATE SET
	    s.quiz_attempts_count = s.quiz_attempts_count + 1,
	    s.updated_at = src.ts
	WHEN NOT MATCHED THEN INSERT
	    (id, user_id, session_date, quiz_attempts_count, total_questions, total_correct, session_duration_seconds, created_at, updated_at)
	    VALUES (src.id, src.user_id, src.session_date, 1, 0, 0, 0, src.ts, src.ts)`

// RecordAttemptStart upserts the day's session and increments its attempt counter.
// Two concurrent first attempts of a day can both take the insert branch; the loser
// hits the (user_id, session_date) constraint and is retried once as an update.
func (r *sqlxStudySessionRepository) RecordAttemptStart(ctx context.Context, userID string, day time.Time) error {
	exec := GetExecutor(ctx, r.db)
	sessionDate := calendarDay(day.UTC())

	var err error
	for attempt := 0; attempt < 2; attempt++ {
		_, err = exec.ExecContext(ctx, recordAttemptStartQuery, util.NewULID(), userID, sessionDate, r.now().UTC())
		if err == nil {
			return nil
		}
		if !isUniqueViolation(err) {
			break
		}
		logger.Get().Debug("study session upsert raced, retrying",
			zap.String("user_id", userID), zap.Time("session_date", sessionDate))
	}
	return fmt.Errorf("failed to record study session: %w", err)
}

// AddCompletedTotals adds a finished attempt to its day. A missing row is left alone.
func (r *sqlxStudySessionRepository) AddCompletedTotals(ctx context.Context, userID string, day time.Time, questions, correct, durationSeconds int) error {
	query := `UPDATE study_sessions
	          SET total_questions = total_questions + :1,
	              total_correct = total_correct + :2,
	              session_duration_seconds = session_duration_seconds + :3,
	              updated_at = :4
	          WHERE user_id = :5 AND session_date = CAST(:6 AS DATE)`
	_, err := GetExecutor(ctx, r.db).ExecContext(ctx, query,
		questions, correct, durationSeconds, r.now().UTC(), userID, calendarDay(day.UTC()))
	if err != nil {
		return fmt.Errorf("failed to update study session totals: %w", err)
	}
	return nil
}

// ListSessionDates returns the user's session days, most recent first.
func (r *sqlxStudySessionRepository) ListSessionDates(ctx context.Context, userID string) ([]time.Time, error) {
	var dates []time.Time
	query := `SELECT session_date FROM study_sessions WHERE user_id = :1 ORDER BY session_date DESC`
	if err := GetExecutor(ctx, r.db).SelectContext(ctx, &dates, query, userID); err != nil {
		return nil, fmt.Errorf("failed to list study sessions: %w", err)
	}
	for i := range dates {
		dates[i] = calendarDay(dates[i])
	}
	return dates, nil
}
