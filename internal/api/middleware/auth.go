package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/storefront/dashboard-api/internal/api/metrics"
	"github.com/storefront/dashboard-api/internal/core/domain"
	"github.com/storefront/dashboard-api/internal/core/ports"
)

// IdentityKey is the echo.Context key holding the resolved domain.Identity.
const IdentityKey = "identity"

// Auth resolves the bearer access token to an identity and stores it in the
// context. Requests without a valid token never reach next.
func Auth(verifier ports.TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return reject("missing_header", "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
				return reject("invalid_header", "invalid authorization header")
			}

			id, err := verifier.VerifyAccess(parts[1])
			if err != nil {
				if errors.Is(err, domain.ErrTokenExpired) {
					return reject("expired", "token expired")
				}
				return reject("invalid_token", "invalid token")
			}

			c.Set(IdentityKey, id)
			return next(c)
		}
	}
}

// IdentityFrom returns the identity stored by Auth.
func IdentityFrom(c echo.Context) (domain.Identity, bool) {
	id, ok := c.Get(IdentityKey).(domain.Identity)
	return id, ok && id.UserID != ""
}

func reject(reason, msg string) error {
	metrics.GuardRejectionsTotal.WithLabelValues(reason).Inc()
	return echo.NewHTTPError(http.StatusUnauthorized, msg)
}
