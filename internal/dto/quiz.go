package dto

// GenerateQuizRequest represents the request body for generating a quiz from a chapter.
// @Description Request body for LLM quiz generation
type GenerateQuizRequest struct {
	ChapterID     string   `json:"chapter_id" validate:"required,ulid"`
	Count         int      `json:"count" validate:"omitempty,min=1,max=30"`
	QuestionTypes []string `json:"question_types" validate:"omitempty,dive,oneof=multiple_choice true_false short_answer"`
}
