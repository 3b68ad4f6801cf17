package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/storefront/dashboard-api/internal/api/middleware"
	"github.com/storefront/dashboard-api/internal/core/domain"
)

// identity returns the caller resolved by the Auth middleware. A missing
// identity means the route was mounted without the guard; reject with 401.
func identity(c echo.Context) (domain.Identity, error) {
	id, ok := middleware.IdentityFrom(c)
	if !ok {
		return domain.Identity{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return id, nil
}

// bindAndValidate decodes the body into req and runs the registered validator.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	return c.Validate(req)
}
