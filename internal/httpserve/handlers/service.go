package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"langsync/internal/server"
)

type getTranslationRequest struct {
	Language string `json:"language"`
}

// GetTranslation handles the get_translation service call. It delegates to
// the same fetch path as the WebSocket get_language command; the two must
// answer identically.
func GetTranslation(c echo.Context, a *server.App) error {
	var req getTranslationRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"success": false,
			"error":   "invalid request body",
		})
	}

	if req.Language == "" {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"success": false,
			"error":   "language is required",
		})
	}

	result := a.Fetcher.Fetch(c.Request().Context(), req.Language)
	return c.JSON(http.StatusOK, result)
}
