package ports

import (
	"context"

	"github.com/taskhub/core/internal/domain/entities"
)

// AuthService interface for authentication operations
type AuthService interface {
	Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error)
	Login(ctx context.Context, req LoginRequest) (*AuthResponse, error)
	ValidateToken(tokenString string) (*entities.Principal, error)
}

// TaskService interface for guarded task operations. Every method takes the
// acting principal; scope and policy checks happen inside, never in handlers.
type TaskService interface {
	Create(ctx context.Context, p entities.Principal, req CreateTaskRequest) (*entities.Task, error)
	Get(ctx context.Context, p entities.Principal, id int64) (*entities.Task, error)
	List(ctx context.Context, p entities.Principal) ([]*entities.Task, error)
	Update(ctx context.Context, p entities.Principal, id int64, req UpdateTaskRequest) (*entities.Task, error)
	Delete(ctx context.Context, p entities.Principal, id int64) error
}

// AuditService interface for the audit trail.
type AuditService interface {
	// Record appends one entry. It returns nothing: append failures are
	// logged and swallowed so the primary operation is never affected.
	Record(ctx context.Context, ev AuditEvent)
	Recent(ctx context.Context, orgID int64) ([]*entities.AuditLog, error)
}

// OrganizationService interface for organization reads.
type OrganizationService interface {
	Describe(ctx context.Context, p entities.Principal) (*OrganizationView, error)
}

// Request/Response Types

type RegisterRequest struct {
	Email          string `json:"email" validate:"required,email"`
	Password       string `json:"password" validate:"required,min=8"`
	Role           string `json:"role" validate:"omitempty"`
	OrganizationID *int64 `json:"organization_id" validate:"omitempty,min=1"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AuthResponse struct {
	AccessToken string `json:"access_token"`
}

type CreateTaskRequest struct {
	Title       string  `json:"title" validate:"required,max=500"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
	Category    *string `json:"category" validate:"omitempty,max=100"`
}

type UpdateTaskRequest struct {
	Title       *string `json:"title" validate:"omitempty,max=500"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
	Status      *string `json:"status" validate:"omitempty,oneof=todo inprogress done"`
	Category    *string `json:"category" validate:"omitempty,max=100"`
}

// AuditEvent carries everything the recorder needs for one entry.
type AuditEvent struct {
	Action     string
	EntityType string
	EntityID   *int64
	Principal  entities.Principal
	Details    map[string]interface{}
	Origin     string
}

// OrganizationView is an organization with its derived children list.
type OrganizationView struct {
	entities.Organization
	Children []*entities.Organization `json:"children"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type ErrorResponse struct {
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}
