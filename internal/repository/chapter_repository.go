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

const chapterColumns = `id, title, description, display_order, created_at`

type sqlxChapterRepository struct {
	db *sqlx.DB
}

func NewSQLXChapterRepository(db *sqlx.DB) domain.ChapterRepository {
	return &sqlxChapterRepository{db: db}
}

func toDomainChapter(m models.Chapter) domain.Chapter {
	return domain.Chapter{
		ID:          m.ID,
		Title:       m.Title,
		Description: m.Description.String,
		Order:       m.DisplayOrder,
		CreatedAt:   m.CreatedAt,
	}
}

// ListChapters returns all chapters in display order.
func (r *sqlxChapterRepository) ListChapters(ctx context.Context) ([]domain.Chapter, error) {
	var rows []models.Chapter
	query := `SELECT ` + chapterColumns + ` FROM chapters ORDER BY display_order, title`
	if err := GetExecutor(ctx, r.db).SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("failed to list chapters: %w", err)
	}
	chapters := make([]domain.Chapter, 0, len(rows))
	for _, m := range rows {
		chapters = append(chapters, toDomainChapter(m))
	}
	return chapters, nil
}

func (r *sqlxChapterRepository) GetChapterByTitle(ctx context.Context, title string) (*domain.Chapter, error) {
	var m models.Chapter
	query := `SELECT ` + chapterColumns + ` FROM chapters WHERE title = :1`
	if err := GetExecutor(ctx, r.db).GetContext(ctx, &m, query, title); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get chapter by title: %w", err)
	}
	c := toDomainChapter(m)
	return &c, nil
}

func (r *sqlxChapterRepository) CreateChapter(ctx context.Context, chapter *domain.Chapter) error {
	if chapter.ID == "" {
		chapter.ID = util.NewULID()
	}
	if chapter.CreatedAt.IsZero() {
		chapter.CreatedAt = time.Now().UTC()
	}
	query := `INSERT INTO chapters (` + chapterColumns + `) VALUES (:1, :2, :3, :4, :5)`
	_, err := GetExecutor(ctx, r.db).ExecContext(ctx, query,
		chapter.ID, chapter.Title, util.StringToNullString(chapter.Description), chapter.Order, chapter.CreatedAt.UTC())
	if err != nil {
		if isUniqueViolation(err) {
			return domain.NewConflictError(fmt.Sprintf("chapter %q already exists", chapter.Title))
		}
		return fmt.Errorf("failed to create chapter: %w", err)
	}
	return nil
}
