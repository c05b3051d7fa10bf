package handler

import (
	"quiz-prep/internal/dto"
	"quiz-prep/internal/service"

	"github.com/gofiber/fiber/v2"
)

// ChapterHandler serves the chapter list
type ChapterHandler struct {
	catalog *service.ChapterCatalog
}

func NewChapterHandler(catalog *service.ChapterCatalog) *ChapterHandler {
	return &ChapterHandler{catalog: catalog}
}

// ListChapters godoc
// @Summary List chapters
// @Description Returns the chapters of the study guide in order
// @Tags chapters
// @Produce json
// @Success 200 {array} dto.ChapterResponse
// @Router /chapters [get]
func (h *ChapterHandler) ListChapters(c *fiber.Ctx) error {
	chapters := h.catalog.List()
	resp := make([]dto.ChapterResponse, 0, len(chapters))
	for _, ch := range chapters {
		resp = append(resp, dto.ChapterResponse{
			ID:          ch.ID,
			Title:       ch.Title,
			Description: ch.Description,
			Order:       ch.Order,
		})
	}
	return c.JSON(resp)
}
