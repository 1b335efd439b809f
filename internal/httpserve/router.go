package httpserve

import (
	"github.com/labstack/echo/v4"

	"langsync/internal/httpserve/handlers"
	"langsync/internal/httpserve/middleware"
	"langsync/internal/server"
	"langsync/internal/ws"
)

// RegisterRoutes sets up the full HTTP surface: the WebSocket command API,
// the service-call endpoint mirroring get_language, a health probe and the
// embedded static assets.
func RegisterRoutes(e *echo.Echo, a *server.App) *echo.Echo {
	e.HideBanner = true
	e.Use(middleware.RequestLogger())
	e.Use(middleware.Secure())

	wsHandler := ws.NewHandler(a.Store, a.Fetcher)
	e.GET("/api/websocket", wsHandler.Serve)

	e.POST("/api/services/frontend_translations/get_translation", func(c echo.Context) error {
		return handlers.GetTranslation(c, a)
	})

	e.GET("/api/health", func(c echo.Context) error {
		return handlers.Health(c, a)
	})

	e.GET("/static/*", handlers.StaticRoute(a))

	return e
}
