package dto

import "time"

// FlashcardRequest represents the request body for creating a flashcard.
// @Description Flashcard to create. chapter is a chapter title, used when chapter_id is empty.
type FlashcardRequest struct {
	Question  string   `json:"question" validate:"required,max=4000"`
	Answer    string   `json:"answer" validate:"required,max=4000"`
	Category  string   `json:"category,omitempty" validate:"max=255"`
	Tags      []string `json:"tags,omitempty" validate:"max=20,dive,required,max=50"`
	ChapterID *string  `json:"chapter_id,omitempty" validate:"omitempty,ulid"`
	Chapter   string   `json:"chapter,omitempty" validate:"max=255"`
}

// ImportFlashcardsRequest is a batch of flashcards stored all-or-nothing.
type ImportFlashcardsRequest struct {
	Flashcards []FlashcardRequest `json:"flashcards" validate:"required,min=1,max=1000,dive"`
}

// ImportFlashcardsResponse reports how many flashcards were stored.
type ImportFlashcardsResponse struct {
	Imported int    `json:"imported"`
	Message  string `json:"message"`
}

// FlashcardResponse is a flashcard as returned by the API.
type FlashcardResponse struct {
	ID        string    `json:"id"`
	ChapterID *string   `json:"chapter_id,omitempty"`
	Question  string    `json:"question"`
	Answer    string    `json:"answer"`
	Category  string    `json:"category,omitempty"`
	Tags      []string  `json:"tags"`
	CreatedAt time.Time `json:"created_at"`
}
