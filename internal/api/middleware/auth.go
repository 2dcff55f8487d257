package middleware

import (
	"errors"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/bookshelf/bookshelf-api/internal/api/metrics"
	"github.com/bookshelf/bookshelf-api/internal/core/domain"
	"github.com/bookshelf/bookshelf-api/internal/core/ports"
	"github.com/bookshelf/bookshelf-api/internal/core/service"
)

const identityKey = "identity"

// Auth is the access interception layer. It runs once per request: when a
// verifiable bearer token is present it attaches the resulting identity to
// the request context; otherwise the request proceeds anonymous. Rejecting
// anonymous callers is the role gate's job, so public and protected routes
// share one pipeline.
func Auth(tokens ports.TokenService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if header == "" {
				return next(c)
			}

			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return next(c)
			}

			ident, err := tokens.Verify(parts[1])
			if err != nil {
				if errors.Is(err, service.ErrExpiredToken) {
					metrics.TokenVerificationsTotal.WithLabelValues("expired").Inc()
				} else {
					metrics.TokenVerificationsTotal.WithLabelValues("invalid").Inc()
				}
				return next(c)
			}

			metrics.TokenVerificationsTotal.WithLabelValues("valid").Inc()
			c.Set(identityKey, ident)
			return next(c)
		}
	}
}

// Identity returns the identity attached by Auth, if any. The second
// return is false for anonymous requests.
func Identity(c echo.Context) (domain.IdentityContext, bool) {
	ident, ok := c.Get(identityKey).(domain.IdentityContext)
	return ident, ok
}
