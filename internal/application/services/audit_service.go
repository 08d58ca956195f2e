package services

import (
	"context"
	"encoding/json"

	"github.com/taskhub/core/internal/domain/entities"
	"github.com/taskhub/core/internal/infrastructure/logger"
	"github.com/taskhub/core/internal/ports"
)

// recentLimit caps the read-side audit query.
const recentLimit = 100

// AuditService appends immutable audit entries. Recording is best-effort:
// a failed append is logged and swallowed, so user-facing operations are
// never held hostage by the log store.
type AuditService struct {
	auditRepo ports.AuditRepository
	logger    *logger.Logger
}

// NewAuditService creates a new audit service
func NewAuditService(auditRepo ports.AuditRepository, logger *logger.Logger) *AuditService {
	return &AuditService{
		auditRepo: auditRepo,
		logger:    logger,
	}
}

// Record appends one entry attributing the action to the event's principal.
// It returns nothing by design; see the struct comment.
func (s *AuditService) Record(ctx context.Context, ev ports.AuditEvent) {
	entry := &entities.AuditLog{
		Action:     ev.Action,
		EntityType: ev.EntityType,
		EntityID:   ev.EntityID,
		UserID:     ev.Principal.UserID,
	}

	if ev.Details != nil {
		if raw, err := json.Marshal(ev.Details); err == nil {
			details := string(raw)
			entry.Details = &details
		}
	}

	if ev.Origin != "" {
		origin := ev.Origin
		entry.IPAddress = &origin
	}

	if err := s.auditRepo.Append(ctx, entry); err != nil {
		s.logger.Warnw("Audit append failed",
			"error", err,
			"action", ev.Action,
			"user_id", ev.Principal.UserID,
		)
	}
}

// Recent returns the most recent entries for users belonging to the given
// organization, newest first.
func (s *AuditService) Recent(ctx context.Context, orgID int64) ([]*entities.AuditLog, error) {
	return s.auditRepo.ListByOrganization(ctx, orgID, recentLimit)
}
