package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/taskhub/core/internal/domain/entities"
	"github.com/taskhub/core/internal/ports"
)

// AuditRepositoryImpl implements the append-only AuditRepository interface.
type AuditRepositoryImpl struct {
	db *sqlx.DB
}

// NewAuditRepository creates a new audit repository
func NewAuditRepository(db *sqlx.DB) ports.AuditRepository {
	return &AuditRepositoryImpl{db: db}
}

func (r *AuditRepositoryImpl) Append(ctx context.Context, entry *entities.AuditLog) error {
	query := `
		INSERT INTO audit_logs (action, entity_type, entity_id, details, user_id, ip_address)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		entry.Action, entry.EntityType, entry.EntityID, entry.Details,
		entry.UserID, entry.IPAddress,
	).Scan(&entry.ID, &entry.CreatedAt)

	if err != nil {
		return fmt.Errorf("append audit log: %w", err)
	}

	return nil
}

// ListByOrganization scopes entries through the acting user's organization.
func (r *AuditRepositoryImpl) ListByOrganization(ctx context.Context, orgID int64, limit int) ([]*entities.AuditLog, error) {
	query := `
		SELECT a.id, a.action, a.entity_type, a.entity_id, a.details, a.user_id,
			a.ip_address, a.created_at
		FROM audit_logs a
		JOIN users u ON u.id = a.user_id
		WHERE u.organization_id = $1
		ORDER BY a.created_at DESC
		LIMIT $2`

	var entries []*entities.AuditLog
	err := r.db.SelectContext(ctx, &entries, query, orgID, limit)
	if err != nil {
		return nil, fmt.Errorf("list audit logs by organization: %w", err)
	}

	return entries, nil
}
