package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"quiz-prep/internal/domain"
	"quiz-prep/internal/repository/models"
	"quiz-prep/internal/util"

	"github.com/jmoiron/sqlx"
)

const flashcardColumns = `id, chapter_id, question, answer, category, tags, created_at`

type sqlxFlashcardRepository struct {
	db *sqlx.DB
}

func NewSQLXFlashcardRepository(db *sqlx.DB) domain.FlashcardRepository {
	return &sqlxFlashcardRepository{db: db}
}

func toDomainFlashcard(m models.Flashcard) domain.Flashcard {
	return domain.Flashcard{
		ID:        m.ID,
		ChapterID: util.NullStringToStringPtr(m.ChapterID),
		Question:  m.Question,
		Answer:    m.Answer,
		Category:  m.Category.String,
		Tags:      []string(m.Tags),
		CreatedAt: m.CreatedAt,
	}
}

func toDomainFlashcards(rows []models.Flashcard) []domain.Flashcard {
	cards := make([]domain.Flashcard, 0, len(rows))
	for _, m := range rows {
		cards = append(cards, toDomainFlashcard(m))
	}
	return cards
}

// ListByChapter returns up to limit flashcards of the chapter, oldest first.
func (r *sqlxFlashcardRepository) ListByChapter(ctx context.Context, chapterID string, limit int) ([]domain.Flashcard, error) {
	var rows []models.Flashcard
	query := `SELECT ` + flashcardColumns + `
	          FROM flashcards
	          WHERE chapter_id = :1
	          ORDER BY created_at, id
	          FETCH FIRST :2 ROWS ONLY`
	if err := GetExecutor(ctx, r.db).SelectContext(ctx, &rows, query, chapterID, limit); err != nil {
		return nil, fmt.Errorf("failed to list flashcards for chapter %s: %w", chapterID, err)
	}
	return toDomainFlashcards(rows), nil
}

// List pages through flashcards, oldest first. Tags are stored as a JSON array, so the
// tag filter matches the quoted element.
func (r *sqlxFlashcardRepository) List(ctx context.Context, filter domain.FlashcardFilter) ([]domain.Flashcard, error) {
	var (
		conditions []string
		args       []interface{}
	)
	bind := func(cond string, arg interface{}) {
		args = append(args, arg)
		conditions = append(conditions, fmt.Sprintf(cond, len(args)))
	}
	if filter.ChapterID != "" {
		bind("chapter_id = :%d", filter.ChapterID)
	}
	if filter.Category != "" {
		bind("category = :%d", filter.Category)
	}
	if filter.Tag != "" {
		bind("tags LIKE :%d", `%"`+filter.Tag+`"%`)
	}

	query := `SELECT ` + flashcardColumns + ` FROM flashcards`
	if len(conditions) > 0 {
		query += ` WHERE ` + strings.Join(conditions, " AND ")
	}
	args = append(args, filter.Offset, filter.Limit)
	query += fmt.Sprintf(` ORDER BY created_at, id OFFSET :%d ROWS FETCH NEXT :%d ROWS ONLY`, len(args)-1, len(args))

	var rows []models.Flashcard
	if err := GetExecutor(ctx, r.db).SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list flashcards: %w", err)
	}
	return toDomainFlashcards(rows), nil
}

func (r *sqlxFlashcardRepository) GetByID(ctx context.Context, id string) (*domain.Flashcard, error) {
	var m models.Flashcard
	query := `SELECT ` + flashcardColumns + ` FROM flashcards WHERE id = :1`
	if err := GetExecutor(ctx, r.db).GetContext(ctx, &m, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get flashcard %s: %w", id, err)
	}
	card := toDomainFlashcard(m)
	return &card, nil
}

func (r *sqlxFlashcardRepository) Create(ctx context.Context, card *domain.Flashcard) error {
	return r.insert(ctx, GetExecutor(ctx, r.db), card)
}

func (r *sqlxFlashcardRepository) CreateBatch(ctx context.Context, cards []*domain.Flashcard) error {
	exec := GetExecutor(ctx, r.db)
	for i, card := range cards {
		if err := r.insert(ctx, exec, card); err != nil {
			return fmt.Errorf("flashcard %d: %w", i, err)
		}
	}
	return nil
}

func (r *sqlxFlashcardRepository) insert(ctx context.Context, exec DBTX, card *domain.Flashcard) error {
	if card.ID == "" {
		card.ID = util.NewULID()
	}
	if card.CreatedAt.IsZero() {
		card.CreatedAt = time.Now().UTC()
	}
	tags, err := models.StringSlice(card.Tags).Value()
	if err != nil {
		return fmt.Errorf("failed to encode flashcard tags: %w", err)
	}

	query := `INSERT INTO flashcards (` + flashcardColumns + `) VALUES (:1, :2, :3, :4, :5, :6, :7)`
	_, err = exec.ExecContext(ctx, query,
		card.ID,
		util.StringPtrToNullString(card.ChapterID),
		card.Question,
		card.Answer,
		util.StringToNullString(card.Category),
		tags,
		card.CreatedAt.UTC(),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.NewConflictError(fmt.Sprintf("flashcard %s already exists", card.ID))
		}
		return fmt.Errorf("failed to create flashcard: %w", err)
	}
	return nil
}
