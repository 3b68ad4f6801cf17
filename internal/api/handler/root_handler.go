package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Index handles GET / with a map of the public entry points.
//
// @Summary      API index
// @Tags         root
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       / [get]
func Index(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"Registration page":  "register/",
		"Login page":         "login/",
		"Refresh token page": "token/refresh",
		"Profile page":       "profile/",
		"API docs":           "docs/index.html",
	})
}
