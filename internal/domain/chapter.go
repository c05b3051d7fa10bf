package domain

import (
	"context"
	"time"
)

// Chapter groups flashcards of the study guide.
type Chapter struct {
	ID          string
	Title       string
	Description string
	Order       int
	CreatedAt   time.Time
}

// Flashcard is a question/answer pair, optionally filed under a chapter.
type Flashcard struct {
	ID        string
	ChapterID *string
	Question  string
	Answer    string
	Category  string
	Tags      []string
	CreatedAt time.Time
}

// FlashcardInput is a flashcard to be created. Chapter is a chapter title and is used
// only when ChapterID is empty.
type FlashcardInput struct {
	Question  string   `validate:"required,max=4000"`
	Answer    string   `validate:"required,max=4000"`
	Category  string   `validate:"max=255"`
	Tags      []string `validate:"max=20,dive,required,max=50"`
	ChapterID *string  `validate:"omitempty,ulid"`
	Chapter   string   `validate:"max=255"`
}

// ChapterSeed describes a chapter of the canonical study guide.
type ChapterSeed struct {
	Title       string
	Description string
	Order       int
}

// CanonicalChapters is the fixed chapter list of the study guide.
var CanonicalChapters = []ChapterSeed{
	{Title: "Rights and Responsibilities", Description: "Rights and responsibilities of citizenship", Order: 1},
	{Title: "Who We Are", Description: "Canada's peoples, languages and diversity", Order: 2},
	{Title: "Canada History", Description: "From Indigenous peoples to Confederation", Order: 3},
	{Title: "Modern Canada", Description: "Canada in the twentieth century and today", Order: 4},
	{Title: "How Canadians Govern Themselves", Description: "Parliamentary democracy and federal structure", Order: 5},
	{Title: "Canada Federal Elections", Description: "Voting and the electoral process", Order: 6},
	{Title: "The Justice System", Description: "Courts, police and the rule of law", Order: 7},
	{Title: "Canadian Symbols", Description: "National symbols, anthem and holidays", Order: 8},
	{Title: "Canadian Economy", Description: "Trade, industries and natural resources", Order: 9},
	{Title: "Canadian Regions", Description: "Provinces, territories and geography", Order: 10},
}

// ChapterRepository defines persistence for chapters.
type ChapterRepository interface {
	ListChapters(ctx context.Context) ([]Chapter, error)
	GetChapterByTitle(ctx context.Context, title string) (*Chapter, error)
	CreateChapter(ctx context.Context, chapter *Chapter) error
}

// FlashcardFilter narrows a flashcard listing. Empty fields match everything.
type FlashcardFilter struct {
	ChapterID string
	Category  string
	Tag       string
	Offset    int
	Limit     int
}

// FlashcardRepository defines persistence for flashcards.
type FlashcardRepository interface {
	ListByChapter(ctx context.Context, chapterID string, limit int) ([]Flashcard, error)
	List(ctx context.Context, filter FlashcardFilter) ([]Flashcard, error)
	GetByID(ctx context.Context, id string) (*Flashcard, error)
	Create(ctx context.Context, card *Flashcard) error
	// CreateBatch inserts every card with the executor carried by ctx. Run it inside a
	// transaction for all-or-nothing imports.
	CreateBatch(ctx context.Context, cards []*Flashcard) error
}
