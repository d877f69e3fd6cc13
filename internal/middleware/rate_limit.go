package middleware

import (
	"time"

	"github.com/employetica/server/internal/errs"
	"github.com/employetica/server/internal/server"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"
)

const MsgTooManyRequests = "Too many requests, please try again later"

// RateLimitMiddleware limits public write endpoints per client IP and
// records every rejection as a New Relic custom event.
type RateLimitMiddleware struct {
	server *server.Server
}

func NewRateLimitMiddleware(s *server.Server) *RateLimitMiddleware {
	return &RateLimitMiddleware{
		server: s,
	}
}

// PerIP allows perSecond requests per client IP with a burst of burst.
func (r *RateLimitMiddleware) PerIP(perSecond float64, burst int) echo.MiddlewareFunc {
	store := middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
		Rate:      rate.Limit(perSecond),
		Burst:     burst,
		ExpiresIn: 3 * time.Minute,
	})

	return middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store: store,
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return errs.NewForbiddenError("Unable to identify client", true)
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			r.RecordRateLimitHit(c.Path())
			GetLogger(c).Warn().Str("client", identifier).Msg("rate limit exceeded")
			return errs.NewTooManyRequestsError(MsgTooManyRequests)
		},
	})
}

// ContactLimiter limits the public contact form using server.contact_rate_limit.
func (r *RateLimitMiddleware) ContactLimiter() echo.MiddlewareFunc {
	perSecond := r.server.Config.Server.ContactRateLimit
	burst := int(perSecond) * 3
	if burst < 3 {
		burst = 3
	}
	return r.PerIP(perSecond, burst)
}

func (r *RateLimitMiddleware) RecordRateLimitHit(endpoint string) {
	if r.server.LoggerService != nil && r.server.LoggerService.GetApplication() != nil {
		r.server.LoggerService.GetApplication().RecordCustomEvent("RateLimitHit", map[string]interface{}{
			"endpoint": endpoint,
		})
	}
}
