package http

import (
	"github.com/labstack/echo/v4"

	"github.com/storefront/dashboard-api/internal/infrastructure/http/handlers"
)

// RegisterProbes mounts the liveness and readiness endpoints. They sit
// outside the auth guard.
func RegisterProbes(e *echo.Echo, checks ...handlers.DependencyCheck) {
	e.GET("/health", handlers.NewHealthHandler().Liveness)
	e.GET("/health/ready", handlers.NewReadinessHandler(checks...).Readiness)
}
