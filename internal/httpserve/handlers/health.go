package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"langsync/internal/server"
)

// Health reports service status and how much metadata is currently held.
func Health(c echo.Context, a *server.App) error {
	blob := a.Store.All()

	resp := map[string]interface{}{
		"status":    "ok",
		"uptime":    a.GetUptime(),
		"languages": len(blob),
	}

	if last := a.Store.LastUpdate(); !last.IsZero() {
		resp["last_update"] = last.Unix()
	}

	if a.Monitor != nil {
		resp["pushes"] = a.Monitor.Pushes()
	}

	return c.JSON(http.StatusOK, resp)
}
