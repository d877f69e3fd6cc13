package middleware

import (
	"time"

	"github.com/employetica/server/internal/model"
	"github.com/employetica/server/internal/server"
	"github.com/employetica/server/internal/service"
	"github.com/labstack/echo/v4"
)

// AuthMiddleware verifies bearer tokens and gates routes by role.
type AuthMiddleware struct {
	server *server.Server
	auth   *service.AuthService
}

// NewAuthMiddleware constructs an AuthMiddleware.
func NewAuthMiddleware(s *server.Server, auth *service.AuthService) *AuthMiddleware {
	return &AuthMiddleware{
		server: s,
		auth:   auth,
	}
}

// RequireAuth is an Echo middleware that enforces authentication.
//
// On success the caller is stored in the Echo context (CallerKey) together
// with user_id, user_email and user_role, and the request logger gains
// the same fields.
func (am *AuthMiddleware) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()

		caller, err := am.auth.Authenticate(c.Request().Context(), c.Request().Header.Get(echo.HeaderAuthorization))
		if err != nil {
			GetLogger(c).Warn().
				Err(err).
				Str("function", "RequireAuth").
				Dur("duration", time.Since(start)).
				Msg("authentication rejected")
			return err
		}

		c.Set(CallerKey, caller)
		c.Set(UserIDKey, caller.Identity.UID)
		c.Set(UserEmailKey, caller.Email())
		if caller.User != nil {
			c.Set(UserRoleKey, caller.User.Role.String())
		}

		withUser(c)

		GetLogger(c).Debug().
			Str("function", "RequireAuth").
			Dur("duration", time.Since(start)).
			Msg("user authenticated successfully")

		return next(c)
	}
}

// RequireRole rejects callers that do not hold role. It must run after RequireAuth.
func (am *AuthMiddleware) RequireRole(role model.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if err := am.auth.Authorize(GetCaller(c), role); err != nil {
				GetLogger(c).Warn().
					Str("function", "RequireRole").
					Str("required_role", role.String()).
					Msg("role check failed")
				return err
			}
			return next(c)
		}
	}
}
