package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/storefront/dashboard-api/internal/core/ports"
)

// UserHandler serves the caller's profile, the chart series and the
// manager-only user listing.
type UserHandler struct {
	service ports.UserService
}

func NewUserHandler(service ports.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// Profile handles GET /profile.
//
// @Summary      Current user's profile
// @Tags         profile
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  profileResponse
// @Failure      401  {object}  errorResponse
// @Router       /profile [get]
func (h *UserHandler) Profile(c echo.Context) error {
	id, err := identity(c)
	if err != nil {
		return err
	}

	user, err := h.service.Profile(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toProfileResponse(user))
}

// UpdateBio handles PATCH /profile. Only the bio is accepted.
//
// @Summary      Update the bio
// @Tags         profile
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      bioRequest  true  "New bio"
// @Success      200   {object}  profileResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /profile [patch]
func (h *UserHandler) UpdateBio(c echo.Context) error {
	id, err := identity(c)
	if err != nil {
		return err
	}

	var req bioRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, err := h.service.UpdateProfile(c.Request().Context(), id, ports.ProfileUpdate{Bio: &req.Bio})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toProfileResponse(user))
}

// UpdateProfile handles PUT /profile. Omitted fields stay unchanged.
//
// @Summary      Update the profile
// @Tags         profile
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      profileRequest  true  "Profile fields"
// @Success      200   {object}  profileResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /profile [put]
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	id, err := identity(c)
	if err != nil {
		return err
	}

	var req profileRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, err := h.service.UpdateProfile(c.Request().Context(), id, ports.ProfileUpdate{
		Username: req.Username,
		Email:    req.Email,
		Bio:      req.Bio,
		Avatar:   req.Avatar,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toProfileResponse(user))
}

// List handles GET /users.
//
// @Summary      List all users
// @Description  Managers only. Password hashes are never included.
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   userListItem
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /users [get]
func (h *UserHandler) List(c echo.Context) error {
	id, err := identity(c)
	if err != nil {
		return err
	}

	users, err := h.service.ListUsers(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserListItems(users))
}

// Chart handles GET /stats/chart.
//
// @Summary      Bar chart series
// @Tags         stats
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  chartResponse
// @Failure      401  {object}  errorResponse
// @Router       /stats/chart [get]
func (h *UserHandler) Chart(c echo.Context) error {
	id, err := identity(c)
	if err != nil {
		return err
	}

	stats, err := h.service.Statistics(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, chartResponse{Data: stats})
}
