package server

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	httpHandlers "github.com/taskhub/core/internal/adapters/http"
	"github.com/taskhub/core/internal/domain/entities"
	"github.com/taskhub/core/internal/ports"
)

// authMiddleware resolves the bearer token into a request principal. Every
// failure mode (missing, malformed, expired, bad signature) terminates the
// request with 401 before any handler runs.
func (s *Server) authMiddleware(authService ports.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Missing authorization header")
			}

			tokenString := strings.TrimPrefix(authHeader, "Bearer ")
			if tokenString == authHeader {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid authorization header format")
			}

			principal, err := authService.ValidateToken(tokenString)
			if err != nil {
				s.logger.LogSecurityEvent("invalid_token", "", c.RealIP(), map[string]interface{}{
					"error": err.Error(),
				})
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
			}

			httpHandlers.SetPrincipal(c, *principal)

			return next(c)
		}
	}
}

// requireRole checks if the principal holds one of the given roles.
func (s *Server) requireRole(roles ...entities.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			p, ok := httpHandlers.PrincipalFrom(c)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "Missing principal")
			}

			for _, role := range roles {
				if p.Role == role {
					return next(c)
				}
			}

			s.logger.LogSecurityEvent("insufficient_permissions",
				p.UserID.String(),
				c.RealIP(),
				map[string]interface{}{
					"required_roles": roles,
					"user_role":      p.Role,
					"endpoint":       c.Request().URL.Path,
				})

			return echo.NewHTTPError(http.StatusForbidden, "Insufficient permissions")
		}
	}
}

// auditMiddleware appends an audit entry after a task handler succeeds.
// The action is derived from the HTTP verb, the entity id from the created
// entity or the route param. Anonymous requests and failed handlers are not
// recorded, and recording itself can never fail the request.
func (s *Server) auditMiddleware(audit ports.AuditService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if err := next(c); err != nil {
				return err
			}

			p, ok := httpHandlers.PrincipalFrom(c)
			if !ok {
				return nil
			}

			action := taskAuditAction(c.Request().Method)
			if action == "" {
				return nil
			}

			var entityID *int64
			if id, ok := httpHandlers.AuditEntityIDFrom(c); ok {
				entityID = &id
			} else if idStr := c.Param("id"); idStr != "" {
				if id, err := strconv.ParseInt(idStr, 10, 64); err == nil {
					entityID = &id
				}
			}

			audit.Record(c.Request().Context(), ports.AuditEvent{
				Action:     action,
				EntityType: "Task",
				EntityID:   entityID,
				Principal:  p,
				Details: map[string]interface{}{
					"method": c.Request().Method,
					"uri":    c.Request().RequestURI,
				},
				Origin: c.RealIP(),
			})

			return nil
		}
	}
}

// taskAuditAction maps an HTTP verb onto the recorded audit action.
func taskAuditAction(method string) string {
	switch method {
	case http.MethodPost:
		return entities.ActionCreateTask
	case http.MethodPut, http.MethodPatch:
		return entities.ActionUpdateTask
	case http.MethodDelete:
		return entities.ActionDeleteTask
	case http.MethodGet:
		return entities.ActionViewTask
	default:
		return ""
	}
}
