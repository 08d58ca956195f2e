package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/taskhub/core/internal/infrastructure/logger"
	"github.com/taskhub/core/internal/ports"
)

// OrganizationHandler handles organization-related requests
type OrganizationHandler struct {
	orgService ports.OrganizationService
	logger     *logger.Logger
}

// NewOrganizationHandler creates a new organization handler
func NewOrganizationHandler(orgService ports.OrganizationService, logger *logger.Logger) *OrganizationHandler {
	return &OrganizationHandler{
		orgService: orgService,
		logger:     logger,
	}
}

// Describe returns the caller's own organization with its children.
func (h *OrganizationHandler) Describe(c echo.Context) error {
	p, ok := PrincipalFrom(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Missing principal")
	}

	view, err := h.orgService.Describe(c.Request().Context(), p)
	if err != nil {
		h.logger.Errorw("Describe organization failed", "error", err, "user_id", p.UserID)
		return httpError(err)
	}

	return c.JSON(http.StatusOK, view)
}
