package router

import (
	"github.com/employetica/server/internal/handler"
	"github.com/labstack/echo/v4"
)

// registerSystemRoutes registers the endpoints that are not part of the HR domain:
// the root banner, the health check and the API docs.
func registerSystemRoutes(r *echo.Echo, h *handler.Handlers) {
	r.GET("/", handler.Index)

	r.GET("/status", h.Health.CheckHealth)

	// openapi.html and openapi.json
	r.Static("/static", handler.StaticDir)

	r.GET("/docs", h.OpenAPI.ServeOpenAPIUI)
}
