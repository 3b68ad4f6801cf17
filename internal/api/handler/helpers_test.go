package handler

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/storefront/dashboard-api/internal/api/middleware"
	"github.com/storefront/dashboard-api/internal/core/domain"
)

var (
	userID    = domain.Identity{UserID: "u-1", Role: domain.RoleUser}
	managerID = domain.Identity{UserID: "m-1", Role: domain.RoleManager}
)

// newContext builds an echo context with the production validator. A nil id
// simulates a request that did not pass through the Auth middleware.
func newContext(t *testing.T, method, target, body string, id *domain.Identity) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	e := echo.New()
	e.Validator = NewValidator()

	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if id != nil {
		c.Set(middleware.IdentityKey, *id)
	}
	return c, rec
}

func requireHTTPError(t *testing.T, err error, code int) {
	t.Helper()

	he, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("expected *echo.HTTPError, got %T (%v)", err, err)
	}
	if he.Code != code {
		t.Fatalf("expected %d, got %d", code, he.Code)
	}
}

func requireFieldError(t *testing.T, err error, field string) {
	t.Helper()

	ve, ok := err.(*domain.ValidationError)
	if !ok {
		t.Fatalf("expected *domain.ValidationError, got %T (%v)", err, err)
	}
	if _, ok := ve.Fields[field]; !ok {
		t.Fatalf("expected field %q in %v", field, ve.Fields)
	}
}
