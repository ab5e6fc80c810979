package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"crm/internal/auth"
	"crm/internal/errors"
	"crm/internal/service"
)

// ClaimsContextKey is where the bearer guard stores the validated *auth.Claims.
const ClaimsContextKey = "user"

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// LoginRequest represents a user login request.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Login godoc
// @Summary Login user
// @Description Exchanges a username and password for a bearer token.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} service.LoginResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return errors.NewHTTPError(http.StatusBadRequest, "invalid request body", errors.CodeValidation)
	}

	if err := c.Validate(&req); err != nil {
		return errors.NewHTTPError(http.StatusBadRequest, err.Error(), errors.CodeValidation)
	}

	res := h.authService.Login(c.Request().Context(), req.Username, req.Password)
	if res.IsFailure() {
		return errors.NewHTTPError(http.StatusUnauthorized, res.Error(), errors.CodeInvalidCredentials)
	}

	return c.JSON(http.StatusOK, res.Value())
}

// MeResponse describes the caller identified by the bearer token.
type MeResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// Me godoc
// @Summary Current user
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} MeResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	claims, ok := c.Get(ClaimsContextKey).(*auth.Claims)
	if !ok {
		return errors.NewHTTPError(http.StatusUnauthorized, "invalid token", errors.CodeUnauthorized)
	}
	return c.JSON(http.StatusOK, MeResponse{
		ID:       claims.Subject,
		Username: claims.Name,
		Role:     claims.Role,
	})
}
