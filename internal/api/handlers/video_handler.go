package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/yeshuachrist/ycapi/internal/service"
	"github.com/yeshuachrist/ycapi/pkg/utils/response"
)

// VideoHandler is the handler for the video directory API
type VideoHandler struct {
	videoService *service.VideoService
	authService  *service.AuthService
	verifier     *service.QuickAuthVerifier
}

// NewVideoHandler creates a new handler for the video directory API
func NewVideoHandler(videoService *service.VideoService, authService *service.AuthService, verifier *service.QuickAuthVerifier) *VideoHandler {
	return &VideoHandler{
		videoService: videoService,
		authService:  authService,
		verifier:     verifier,
	}
}

// List returns every video in display order. Public.
func (h *VideoHandler) List(c echo.Context) error {
	videos, err := h.videoService.ListVideos()
	if err != nil {
		return serviceError(c, err)
	}
	return response.SuccessResponse(c, videos)
}

type createVideoRequest struct {
	URL     string `json:"url"`
	Tab     string `json:"tab"`
	Title   string `json:"title"`
	Seasons *int   `json:"seasons"`
}

// Create stores a new video entry. Authorized by a session cookie or an
// allowlisted Quick Auth bearer token.
func (h *VideoHandler) Create(c echo.Context) error {
	identity, err := authorizeAdmin(c, h.authService, h.verifier)
	if err != nil {
		return serviceError(c, err)
	}

	var req createVideoRequest
	if err := c.Bind(&req); err != nil || req.URL == "" || req.Tab == "" {
		return response.ErrorResponse(c, http.StatusBadRequest, response.ErrTypeInvalidPayload, "Invalid payload")
	}

	video, err := h.videoService.CreateVideo(service.CreateVideoInput{
		URL:          req.URL,
		Tab:          req.Tab,
		Title:        req.Title,
		Seasons:      req.Seasons,
		CreatedByFid: identity.fid,
	})
	if err != nil {
		return serviceError(c, err)
	}
	return response.CreatedResponse(c, video)
}

// Delete removes a video entry by id. Session gated.
func (h *VideoHandler) Delete(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return response.ErrorResponse(c, http.StatusBadRequest, response.ErrTypeInvalidPayload, "Invalid payload")
	}
	if err := h.videoService.DeleteVideo(id); err != nil {
		return serviceError(c, err)
	}
	return response.SuccessResponse(c, map[string]interface{}{"ok": true})
}

type reorderRequest struct {
	Tab         string   `json:"tab"`
	SeriesTitle string   `json:"seriesTitle"`
	OrderedIds  []string `json:"orderedIds"`
}

// Reorder applies a manual ordering within one tab/series scope. Session gated.
func (h *VideoHandler) Reorder(c echo.Context) error {
	var req reorderRequest
	if err := c.Bind(&req); err != nil || req.Tab == "" {
		return response.ErrorResponse(c, http.StatusBadRequest, response.ErrTypeInvalidPayload, "Invalid payload")
	}

	if err := h.videoService.Reorder(req.Tab, req.SeriesTitle, req.OrderedIds); err != nil {
		return serviceError(c, err)
	}
	return response.SuccessResponse(c, map[string]interface{}{"ok": true})
}
