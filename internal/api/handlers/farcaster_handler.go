package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/yeshuachrist/ycapi/internal/service"
	"github.com/yeshuachrist/ycapi/pkg/utils/response"
)

// FarcasterHandler is the handler for the Farcaster feed and identity API
type FarcasterHandler struct {
	feedService *service.FarcasterService
	verifier    *service.QuickAuthVerifier
}

// NewFarcasterHandler creates a new handler for the Farcaster API
func NewFarcasterHandler(feedService *service.FarcasterService, verifier *service.QuickAuthVerifier) *FarcasterHandler {
	return &FarcasterHandler{
		feedService: feedService,
		verifier:    verifier,
	}
}

// Feed proxies a cast search. With a `fid` param it returns that user's
// recent casts filtered by the hashtag in `q`; otherwise it runs the search
// fallback chain across the upstream pair. An absent `q` falls back to the
// community hashtag.
func (h *FarcasterHandler) Feed(c echo.Context) error {
	q := c.QueryParam("q")

	if fidParam := c.QueryParam("fid"); fidParam != "" {
		fid, err := strconv.ParseInt(fidParam, 10, 64)
		if err != nil || fid <= 0 {
			return response.ErrorResponse(c, http.StatusBadRequest, response.ErrTypeInvalidPayload, "Invalid fid")
		}
		casts, err := h.feedService.CastsByFid(c.Request().Context(), fid, q)
		if err != nil {
			return serviceError(c, err)
		}
		return response.SuccessResponse(c, map[string]interface{}{"casts": casts})
	}

	casts, err := h.feedService.SearchCasts(c.Request().Context(), q)
	if err != nil {
		return serviceError(c, err)
	}
	return response.SuccessResponse(c, map[string]interface{}{"casts": casts})
}

// Me verifies the caller's Quick Auth token and returns their fid, admin
// standing and primary Ethereum address when one is set.
func (h *FarcasterHandler) Me(c echo.Context) error {
	token := bearerToken(c)
	if token == "" {
		return response.ErrorResponse(c, http.StatusUnauthorized, response.ErrTypeUnauthorized, "Unauthorized")
	}

	fid, err := h.verifier.VerifyToken(c.Request().Context(), token, requestDomain(c))
	if err != nil {
		return serviceError(c, err)
	}

	data := map[string]interface{}{
		"fid":     fid,
		"isAdmin": h.verifier.IsAdminFid(fid),
	}
	if address := h.verifier.ResolvePrimaryAddress(c.Request().Context(), fid); address != "" {
		data["primaryAddress"] = address
	}
	return response.SuccessResponse(c, data)
}
