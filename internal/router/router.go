// Package router initializes the HTTP router (using Echo).
//
// It registers the middlewares and defines the API route groups,
// mapping specific paths to their corresponding handlers
package router

import (
	"github.com/employetica/server/internal/handler"
	"github.com/employetica/server/internal/middleware"
	"github.com/employetica/server/internal/model"
	"github.com/employetica/server/internal/server"
	"github.com/employetica/server/internal/service"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
)

// maxBodySize bounds JSON request bodies.
const maxBodySize = "1M"

// NewRouter builds the Echo instance with the global middleware chain and every route.
//
// Order matters: the request id must exist before the New Relic transaction
// and the request logger read it, and the logger must be in context before
// any handler or auth middleware logs.
func NewRouter(s *server.Server, h *handler.Handlers, services *service.Services) *echo.Echo {
	middlewares := middleware.NewMiddlewares(s, services)

	router := echo.New()
	router.HideBanner = true
	router.HTTPErrorHandler = middlewares.Global.GlobalErrorHandler

	router.Use(
		middleware.RequestID(),
		middlewares.Tracing.NewRelicMiddleware(),
		middlewares.Tracing.EnhanceTracing(),
		middlewares.ContextEnhancer.EnhanceContext(),
		middlewares.Global.RequestLogger(),
		middlewares.Global.Recover(),
		middlewares.Global.Secure(),
		middlewares.Global.CORS(),
		echoMiddleware.BodyLimit(maxBodySize),
	)

	registerSystemRoutes(router, h)

	routes := &routeSet{
		router:   router,
		handlers: h,
		auth:     middlewares.Auth,
	}
	routes.registerUserRoutes()
	routes.registerWorksheetRoutes()
	routes.registerPaymentRoutes(services.Payments.WebhookEnabled())
	routes.registerOverviewRoutes()
	routes.registerContactRoutes(middlewares.RateLimit.ContactLimiter())

	return router
}

// routeSet carries what every route group registration needs.
type routeSet struct {
	router   *echo.Echo
	handlers *handler.Handlers
	auth     *middleware.AuthMiddleware
}

// as returns the middleware that authenticates the caller and requires role.
func (r *routeSet) as(role model.Role) []echo.MiddlewareFunc {
	return []echo.MiddlewareFunc{r.auth.RequireAuth, r.auth.RequireRole(role)}
}
