package models

import (
	"database/sql"
	"time"
)

// Chapter maps the chapters table; ORDER is reserved in Oracle, hence DISPLAY_ORDER.
type Chapter struct {
	ID           string         `db:"ID"`
	Title        string         `db:"TITLE"`
	Description  sql.NullString `db:"DESCRIPTION"`
	DisplayOrder int            `db:"DISPLAY_ORDER"`
	CreatedAt    time.Time      `db:"CREATED_AT"`
}

func (Chapter) TableName() string {
	return "chapters"
}

// Flashcard maps the flashcards table.
type Flashcard struct {
	ID        string         `db:"ID"`
	ChapterID sql.NullString `db:"CHAPTER_ID"`
	Question  string         `db:"QUESTION"`
	Answer    string         `db:"ANSWER"`
	Category  sql.NullString `db:"CATEGORY"`
	Tags      StringSlice    `db:"TAGS"`
	CreatedAt time.Time      `db:"CREATED_AT"`
}

func (Flashcard) TableName() string {
	return "flashcards"
}
