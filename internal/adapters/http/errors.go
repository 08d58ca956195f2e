package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/taskhub/core/internal/domain/entities"
)

// httpError maps domain sentinel errors onto terminal HTTP responses.
// Policy and scope denials surface immediately; nothing is retried or
// silently downgraded.
func httpError(err error) *echo.HTTPError {
	switch {
	case errors.Is(err, entities.ErrInvalidCredentials):
		return echo.NewHTTPError(http.StatusUnauthorized, entities.ErrInvalidCredentials.Error())
	case errors.Is(err, entities.ErrForbidden):
		return echo.NewHTTPError(http.StatusForbidden, "You cannot access this resource")
	case errors.Is(err, entities.ErrTaskNotFound),
		errors.Is(err, entities.ErrUserNotFound),
		errors.Is(err, entities.ErrOrganizationNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, entities.ErrEmailTaken):
		return echo.NewHTTPError(http.StatusConflict, entities.ErrEmailTaken.Error())
	case errors.Is(err, entities.ErrInvalidStatus):
		return echo.NewHTTPError(http.StatusBadRequest, entities.ErrInvalidStatus.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, "Internal server error")
	}
}
