package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/taskhub/core/internal/domain/entities"
)

// OrganizationRepository defines the interface for organization data operations
type OrganizationRepository interface {
	Create(ctx context.Context, org *entities.Organization) error
	GetByID(ctx context.Context, id int64) (*entities.Organization, error)
	GetChildren(ctx context.Context, parentID int64) ([]*entities.Organization, error)
	Delete(ctx context.Context, id int64) error
}

// UserRepository defines the interface for user data operations
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error)
	// GetByEmail is the one read that includes the password hash; it exists
	// for credential checks only.
	GetByEmail(ctx context.Context, email string) (*entities.User, error)
	ListByOrganization(ctx context.Context, orgID int64) ([]*entities.User, error)
}

// TaskRepository defines the interface for task data operations
type TaskRepository interface {
	Create(ctx context.Context, task *entities.Task) error
	GetByID(ctx context.Context, id int64) (*entities.Task, error)
	ListByOrganization(ctx context.Context, orgID int64) ([]*entities.Task, error)
	Update(ctx context.Context, task *entities.Task) error
	Delete(ctx context.Context, id int64) error
}

// AuditRepository defines the interface for the append-only audit store.
// There is deliberately no update or delete.
type AuditRepository interface {
	Append(ctx context.Context, entry *entities.AuditLog) error
	// ListByOrganization returns entries for users belonging to the given
	// organization, newest first, capped at limit.
	ListByOrganization(ctx context.Context, orgID int64, limit int) ([]*entities.AuditLog, error)
}
