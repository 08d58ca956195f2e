package http

import (
	"github.com/labstack/echo/v4"

	"github.com/taskhub/core/internal/domain/entities"
)

const (
	principalKey     = "principal"
	auditEntityIDKey = "audit_entity_id"
)

// SetPrincipal attaches the authenticated principal to the request context.
// It is only ever called by the auth middleware.
func SetPrincipal(c echo.Context, p entities.Principal) {
	c.Set(principalKey, p)
}

// PrincipalFrom extracts the authenticated principal from the request
// context. ok is false on unauthenticated routes.
func PrincipalFrom(c echo.Context) (entities.Principal, bool) {
	p, ok := c.Get(principalKey).(entities.Principal)
	return p, ok
}

// SetAuditEntityID lets a handler tell the audit middleware which entity a
// create produced; updates and deletes carry the id in the route instead.
func SetAuditEntityID(c echo.Context, id int64) {
	c.Set(auditEntityIDKey, id)
}

// AuditEntityIDFrom returns the entity id a handler recorded, if any.
func AuditEntityIDFrom(c echo.Context) (int64, bool) {
	id, ok := c.Get(auditEntityIDKey).(int64)
	return id, ok
}
