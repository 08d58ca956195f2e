package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/taskhub/core/internal/infrastructure/logger"
	"github.com/taskhub/core/internal/ports"
)

// AuditHandler handles audit-trail reads.
type AuditHandler struct {
	auditService ports.AuditService
	logger       *logger.Logger
}

// NewAuditHandler creates a new audit handler
func NewAuditHandler(auditService ports.AuditService, logger *logger.Logger) *AuditHandler {
	return &AuditHandler{
		auditService: auditService,
		logger:       logger,
	}
}

// Recent returns the latest entries for the caller's organization,
// newest first.
func (h *AuditHandler) Recent(c echo.Context) error {
	p, ok := PrincipalFrom(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Missing principal")
	}

	entries, err := h.auditService.Recent(c.Request().Context(), p.OrganizationID)
	if err != nil {
		h.logger.Errorw("List audit logs failed", "error", err, "user_id", p.UserID)
		return httpError(err)
	}

	return c.JSON(http.StatusOK, entries)
}
