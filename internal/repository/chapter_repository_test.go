package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"quiz-prep/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLXChapterRepository_ListChapters(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewSQLXChapterRepository(db)
	now := time.Now().UTC().Truncate(time.Second)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM chapters ORDER BY display_order, title`)).
		WillReturnRows(sqlmock.NewRows([]string{"ID", "TITLE", "DESCRIPTION", "DISPLAY_ORDER", "CREATED_AT"}).
			AddRow("c1", "Rights and Responsibilities", "desc", 1, now).
			AddRow("c2", "Who We Are", nil, 2, now))

	chapters, err := repo.ListChapters(context.Background())
	require.NoError(t, err)
	require.Len(t, chapters, 2)
	assert.Equal(t, 1, chapters[0].Order)
	assert.Equal(t, "", chapters[1].Description)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLXChapterRepository_GetChapterByTitle(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewSQLXChapterRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM chapters WHERE title = :1`)).
		WithArgs("Nope").
		WillReturnError(sql.ErrNoRows)

	c, err := repo.GetChapterByTitle(context.Background(), "Nope")
	assert.NoError(t, err)
	assert.Nil(t, c)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLXChapterRepository_CreateChapter(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewSQLXChapterRepository(db)
	chapter := &domain.Chapter{Title: "Canadian Regions", Order: 10}

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO chapters (`)).
		WithArgs(sqlmock.AnyArg(), "Canadian Regions", nil, 10, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.CreateChapter(context.Background(), chapter))
	assert.NotEmpty(t, chapter.ID)
	assert.False(t, chapter.CreatedAt.IsZero())

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO chapters (`)).
		WillReturnError(errors.New("ORA-00001: unique constraint (QP.UQ_CHAPTERS_TITLE) violated"))
	err := repo.CreateChapter(context.Background(), &domain.Chapter{Title: "Canadian Regions"})
	assert.True(t, domain.IsCode(err, domain.CodeConflict))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLXFlashcardRepository_ListByChapter(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewSQLXFlashcardRepository(db)
	now := time.Now().UTC().Truncate(time.Second)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM flashcards`)).
		WithArgs("c1", 5).
		WillReturnRows(sqlmock.NewRows([]string{"ID", "CHAPTER_ID", "QUESTION", "ANSWER", "CATEGORY", "TAGS", "CREATED_AT"}).
			AddRow("f1", "c1", "Who is the head of state?", "The Sovereign", "government", `["monarchy"]`, now).
			AddRow("f2", "c1", "What are the three levels of government?", "Federal, provincial, municipal", nil, nil, now))

	cards, err := repo.ListByChapter(context.Background(), "c1", 5)
	require.NoError(t, err)
	require.Len(t, cards, 2)
	assert.Equal(t, []string{"monarchy"}, cards[0].Tags)
	assert.Empty(t, cards[1].Tags)
	assert.Equal(t, "c1", *cards[0].ChapterID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
