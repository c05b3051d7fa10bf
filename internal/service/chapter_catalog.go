package service

import (
	"context"
	"fmt"

	"quiz-prep/internal/domain"
	"quiz-prep/internal/logger"

	"go.uber.org/zap"
)

// ChapterCatalog is a read-only title/id lookup over the chapters table. It is
// loaded once at startup and shared by the components that resolve chapters.
type ChapterCatalog struct {
	ordered []domain.Chapter
	byID    map[string]domain.Chapter
	byTitle map[string]string
}

// NewChapterCatalog builds a catalog from chapters, keeping their order.
func NewChapterCatalog(chapters []domain.Chapter) *ChapterCatalog {
	c := &ChapterCatalog{
		ordered: make([]domain.Chapter, len(chapters)),
		byID:    make(map[string]domain.Chapter, len(chapters)),
		byTitle: make(map[string]string, len(chapters)),
	}
	copy(c.ordered, chapters)
	for _, ch := range chapters {
		c.byID[ch.ID] = ch
		c.byTitle[ch.Title] = ch.ID
	}
	return c
}

// LoadChapterCatalog reads every chapter from repo.
func LoadChapterCatalog(ctx context.Context, repo domain.ChapterRepository) (*ChapterCatalog, error) {
	chapters, err := repo.ListChapters(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load chapter catalog: %w", err)
	}
	logger.Get().Info("Chapter catalog loaded", zap.Int("chapters", len(chapters)))
	return NewChapterCatalog(chapters), nil
}

// ByTitle returns the id of the chapter titled title.
func (c *ChapterCatalog) ByTitle(title string) (string, bool) {
	id, ok := c.byTitle[title]
	return id, ok
}

// ByID returns the chapter with the given id.
func (c *ChapterCatalog) ByID(id string) (domain.Chapter, bool) {
	ch, ok := c.byID[id]
	return ch, ok
}

// Has reports whether id names a known chapter.
func (c *ChapterCatalog) Has(id string) bool {
	_, ok := c.byID[id]
	return ok
}

// List returns the chapters in display order. The slice is a copy.
func (c *ChapterCatalog) List() []domain.Chapter {
	out := make([]domain.Chapter, len(c.ordered))
	copy(out, c.ordered)
	return out
}

// SeedChapters inserts the canonical chapters that are not stored yet and returns
// how many were created.
func SeedChapters(ctx context.Context, repo domain.ChapterRepository) (int, error) {
	created := 0
	for _, seed := range domain.CanonicalChapters {
		existing, err := repo.GetChapterByTitle(ctx, seed.Title)
		if err != nil {
			return created, fmt.Errorf("failed to look up chapter %q: %w", seed.Title, err)
		}
		if existing != nil {
			continue
		}
		ch := &domain.Chapter{Title: seed.Title, Description: seed.Description, Order: seed.Order}
		if err := repo.CreateChapter(ctx, ch); err != nil {
			return created, fmt.Errorf("failed to create chapter %q: %w", seed.Title, err)
		}
		logger.Get().Info("Seeded chapter", zap.String("title", ch.Title), zap.String("id", ch.ID))
		created++
	}
	return created, nil
}
