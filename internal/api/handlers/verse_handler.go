package handlers

import (
	"github.com/labstack/echo/v4"
	"github.com/yeshuachrist/ycapi/internal/service"
	"github.com/yeshuachrist/ycapi/pkg/utils/response"
)

// VerseHandler is the handler for the daily verse API
type VerseHandler struct {
	verseService *service.VerseService
}

// NewVerseHandler creates a new handler for the daily verse API
func NewVerseHandler(verseService *service.VerseService) *VerseHandler {
	return &VerseHandler{verseService: verseService}
}

// DailyVerse returns the verse of the day. The optional `date` query param
// selects a specific YYYY-MM-DD day; anything else means today.
func (h *VerseHandler) DailyVerse(c echo.Context) error {
	verse, err := h.verseService.GetDailyVerse(c.Request().Context(), c.QueryParam("date"))
	if err != nil {
		return serviceError(c, err)
	}
	return response.SuccessResponse(c, verse)
}
