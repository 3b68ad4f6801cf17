package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/storefront/dashboard-api/internal/api/metrics"
	"github.com/storefront/dashboard-api/internal/core/domain"
	"github.com/storefront/dashboard-api/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register creates a new user account and returns a token pair.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "User registration details"
// @Success      201   {object}  registerResponse
// @Failure      400   {object}  errorResponse
// @Failure      429   {object}  errorResponse
// @Router       /register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := bindAndValidate(c, &req); err != nil {
		recordAuth("register", err)
		return err
	}

	user, pair, err := h.authService.Register(c.Request().Context(), ports.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	recordAuth("register", err)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, registerResponse{
		User:         toProfileResponse(user),
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
}

// Login authenticates a user and returns a fresh token pair.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  tokenPairResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      429   {object}  errorResponse
// @Router       /login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := bindAndValidate(c, &req); err != nil {
		recordAuth("login", err)
		return err
	}

	pair, err := h.authService.Login(c.Request().Context(), req.Username, req.Password)
	recordAuth("login", err)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, tokenPairResponse{AccessToken: pair.AccessToken, RefreshToken: pair.RefreshToken})
}

// Refresh exchanges a refresh token for a new access token.
//
// @Summary      Refresh the access token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      refreshRequest  true  "Refresh token"
// @Success      200   {object}  refreshResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /token/refresh [post]
func (h *AuthHandler) Refresh(c echo.Context) error {
	var req refreshRequest
	if err := bindAndValidate(c, &req); err != nil {
		recordAuth("refresh", err)
		return err
	}

	access, _, err := h.authService.Refresh(c.Request().Context(), req.Refresh)
	recordAuth("refresh", err)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, refreshResponse{Access: access})
}

// ChangePassword replaces the caller's password. Issued tokens stay valid.
//
// @Summary      Change password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      changePasswordRequest  true  "Current and new password"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /change-password [post]
func (h *AuthHandler) ChangePassword(c echo.Context) error {
	id, err := identity(c)
	if err != nil {
		return err
	}

	var req changePasswordRequest
	if err := bindAndValidate(c, &req); err != nil {
		recordAuth("change_password", err)
		return err
	}

	err = h.authService.ChangePassword(c.Request().Context(), id, req.CurrentPassword, req.NewPassword)
	recordAuth("change_password", err)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, messageResponse{Message: "Password changed successfully."})
}

func recordAuth(operation string, err error) {
	metrics.AuthAttemptsTotal.WithLabelValues(operation, authResult(err)).Inc()
}

func authResult(err error) string {
	var he *echo.HTTPError
	switch {
	case err == nil:
		return "ok"
	case errors.As(err, &he):
		return "bad_request"
	case errors.Is(err, domain.ErrValidation):
		return "validation"
	case errors.Is(err, domain.ErrAccountInactive):
		return "inactive"
	case errors.Is(err, domain.ErrInvalidCredentials):
		return "invalid_credentials"
	case errors.Is(err, domain.ErrTokenExpired):
		return "expired"
	case errors.Is(err, domain.ErrInvalidToken):
		return "invalid_token"
	default:
		return "error"
	}
}
