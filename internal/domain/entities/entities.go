package entities

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Common errors
var (
	ErrTaskNotFound         = errors.New("task not found")
	ErrUserNotFound         = errors.New("user not found")
	ErrOrganizationNotFound = errors.New("organization not found")
	ErrEmailTaken           = errors.New("user with this email already exists")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrForbidden            = errors.New("forbidden")
	ErrInvalidStatus        = errors.New("invalid task status")
)

// Role is the access tier a user holds within their organization.
type Role string

const (
	RoleOwner  Role = "owner"
	RoleAdmin  Role = "admin"
	RoleViewer Role = "viewer"
)

// ParseRole maps free-form input onto a Role, falling back to viewer for
// anything unrecognized.
func ParseRole(s string) Role {
	switch Role(strings.ToLower(s)) {
	case RoleOwner:
		return RoleOwner
	case RoleAdmin:
		return RoleAdmin
	case RoleViewer:
		return RoleViewer
	default:
		return RoleViewer
	}
}

func (r Role) IsValid() bool {
	switch r {
	case RoleOwner, RoleAdmin, RoleViewer:
		return true
	default:
		return false
	}
}

type TaskStatus string

const (
	TaskStatusTodo       TaskStatus = "todo"
	TaskStatusInProgress TaskStatus = "inprogress"
	TaskStatusDone       TaskStatus = "done"
)

func (ts TaskStatus) IsValid() bool {
	switch ts {
	case TaskStatusTodo, TaskStatusInProgress, TaskStatusDone:
		return true
	default:
		return false
	}
}

// Organization represents a tenant. A parent reference forms an at most
// two-level hierarchy; children are derived by query, never stored.
type Organization struct {
	ID        int64     `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	ParentID  *int64    `json:"parent_id" db:"parent_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// User represents an account. A user belongs to exactly one organization
// for its entire lifetime.
type User struct {
	ID             uuid.UUID `json:"id" db:"id"`
	Email          string    `json:"email" db:"email"`
	PasswordHash   string    `json:"-" db:"password_hash"`
	Role           Role      `json:"role" db:"role"`
	OrganizationID int64     `json:"organization_id" db:"organization_id"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"`
}

// Task represents a unit of work scoped to the creator's organization.
type Task struct {
	ID             int64      `json:"id" db:"id"`
	Title          string     `json:"title" db:"title"`
	Description    *string    `json:"description" db:"description"`
	Status         TaskStatus `json:"status" db:"status"`
	Category       *string    `json:"category" db:"category"`
	CreatorID      uuid.UUID  `json:"creator_id" db:"creator_id"`
	OrganizationID int64      `json:"organization_id" db:"organization_id"`
	CreatedAt      time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at" db:"updated_at"`
}

// CreatedBy reports whether the given user created this task.
func (t *Task) CreatedBy(userID uuid.UUID) bool {
	return t.CreatorID == userID
}

// InOrganization reports whether the task belongs to the given organization.
func (t *Task) InOrganization(orgID int64) bool {
	return t.OrganizationID == orgID
}

// AuditLog is an immutable record of who did what to which entity.
// Rows are append-only: no update or delete path exists anywhere.
type AuditLog struct {
	ID         int64     `json:"id" db:"id"`
	Action     string    `json:"action" db:"action"`
	EntityType string    `json:"entity_type" db:"entity_type"`
	EntityID   *int64    `json:"entity_id" db:"entity_id"`
	Details    *string   `json:"details" db:"details"`
	UserID     uuid.UUID `json:"user_id" db:"user_id"`
	IPAddress  *string   `json:"ip_address" db:"ip_address"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}

// Audit actions recorded for task operations.
const (
	ActionCreateTask = "CREATE_TASK"
	ActionUpdateTask = "UPDATE_TASK"
	ActionDeleteTask = "DELETE_TASK"
	ActionViewTask   = "VIEW_TASK"
)

// Principal is the authenticated identity attached to a request. It lives
// for the duration of a single request and is never cached across requests.
type Principal struct {
	UserID         uuid.UUID `json:"user_id"`
	Email          string    `json:"email"`
	Role           Role      `json:"role"`
	OrganizationID int64     `json:"organization_id"`
}
