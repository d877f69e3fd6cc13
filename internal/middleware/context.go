package middleware

import (
	"github.com/employetica/server/internal/logger"
	"github.com/employetica/server/internal/server"
	"github.com/employetica/server/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/rs/zerolog"
)

// Echo context keys.
const (
	UserIDKey    = "user_id"
	UserEmailKey = "user_email"
	UserRoleKey  = "user_role"
	CallerKey    = "caller"

	// LoggerKey is used as the key for storing the request-scoped logger.
	LoggerKey = "logger"
)

// ContextEnhancer builds the request-scoped logger (request_id, method,
// path, ip, trace ids) and stores it in both the Echo context and the Go
// request context, so services can reach it through zerolog.Ctx.
type ContextEnhancer struct {
	server *server.Server
}

// NewContextEnhancer creates a new ContextEnhancer using the app Server container.
func NewContextEnhancer(s *server.Server) *ContextEnhancer {
	return &ContextEnhancer{server: s}
}

// EnhanceContext returns an Echo middleware.
func (ce *ContextEnhancer) EnhanceContext() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			contextLogger := ce.server.Logger.With().
				Str("request_id", GetRequestID(c)).
				Str("method", c.Request().Method).
				Str("path", c.Path()).
				Str("ip", c.RealIP()).
				Logger()

			if txn := newrelic.FromContext(c.Request().Context()); txn != nil {
				contextLogger = logger.WithTraceContext(contextLogger, txn)
			}

			setLogger(c, contextLogger)

			return next(c)
		}
	}
}

func setLogger(c echo.Context, l zerolog.Logger) {
	c.Set(LoggerKey, &l)
	c.SetRequest(c.Request().WithContext(l.WithContext(c.Request().Context())))
}

// withUser adds the authenticated user fields to the request logger.
func withUser(c echo.Context) {
	l := GetLogger(c).With()

	if userID := GetUserID(c); userID != "" {
		l = l.Str("user_id", userID)
	}
	if email := GetUserEmail(c); email != "" {
		l = l.Str("user_email", email)
	}
	if role, ok := c.Get(UserRoleKey).(string); ok && role != "" {
		l = l.Str("user_role", role)
	}

	setLogger(c, l.Logger())
}

// GetUserID reads the identity provider uid set by RequireAuth.
func GetUserID(c echo.Context) string {
	if userID, ok := c.Get(UserIDKey).(string); ok {
		return userID
	}
	return ""
}

// GetUserEmail reads the normalized caller email set by RequireAuth.
func GetUserEmail(c echo.Context) string {
	if email, ok := c.Get(UserEmailKey).(string); ok {
		return email
	}
	return ""
}

// GetCaller returns the authenticated caller, or nil outside RequireAuth.
func GetCaller(c echo.Context) *service.Caller {
	if caller, ok := c.Get(CallerKey).(*service.Caller); ok {
		return caller
	}
	return nil
}

// GetLogger retrieves the request-scoped logger from Echo context.
//
// If EnhanceContext middleware didn't run, it returns a no-op logger.
func GetLogger(c echo.Context) *zerolog.Logger {
	if logger, ok := c.Get(LoggerKey).(*zerolog.Logger); ok {
		return logger
	}

	logger := zerolog.Nop()
	return &logger
}
