package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"crm/internal/errors"
	"crm/internal/service"
)

// SeedHandler handles seed data endpoints.
type SeedHandler struct {
	seedService service.SeedService
	enabled     bool
}

// NewSeedHandler creates a new seed handler. A disabled handler refuses every request.
func NewSeedHandler(seedService service.SeedService, enabled bool) *SeedHandler {
	return &SeedHandler{seedService: seedService, enabled: enabled}
}

// SeedResponse represents the seed response.
type SeedResponse struct {
	Success bool                 `json:"success"`
	Message string               `json:"message"`
	Code    string               `json:"code,omitempty"`
	Summary *service.SeedSummary `json:"summary,omitempty"`
}

// Seed godoc
// @Summary Seed demo data
// @Description Inserts the demo users and customers. Not idempotent: rows that already exist are skipped.
// @Tags seed
// @Produce json
// @Success 200 {object} SeedResponse
// @Failure 403 {object} SeedResponse
// @Failure 500 {object} SeedResponse
// @Router /seed [post]
func (h *SeedHandler) Seed(c echo.Context) error {
	if !h.enabled {
		return c.JSON(http.StatusForbidden, SeedResponse{
			Success: false,
			Message: "seeding is disabled",
			Code:    errors.CodeSeedDisabled,
		})
	}

	res := h.seedService.Seed(c.Request().Context())
	if res.IsFailure() {
		return c.JSON(http.StatusInternalServerError, SeedResponse{
			Success: false,
			Message: res.Error(),
		})
	}

	summary := res.Value()
	return c.JSON(http.StatusOK, SeedResponse{
		Success: true,
		Message: service.MsgSeeded,
		Summary: &summary,
	})
}
