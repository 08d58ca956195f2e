// Package policy holds the role-based permission table for task operations.
// The decision function is pure: no I/O, no clock, total over its inputs.
package policy

import "github.com/taskhub/core/internal/domain/entities"

// Action is a guarded task operation.
type Action string

const (
	ActionCreateTask Action = "create_task"
	ActionViewTask   Action = "view_task"
	ActionUpdateTask Action = "update_task"
	ActionDeleteTask Action = "delete_task"
)

type verdict int

const (
	deny verdict = iota
	allow
	allowCreatorOnly
)

// rules is the role x action decision table. Anything absent resolves to
// the zero verdict, deny, so unknown roles and actions are always refused.
var rules = map[Action]map[entities.Role]verdict{
	ActionCreateTask: {
		entities.RoleOwner:  allow,
		entities.RoleAdmin:  allow,
		entities.RoleViewer: allow,
	},
	ActionViewTask: {
		entities.RoleOwner:  allow,
		entities.RoleAdmin:  allow,
		entities.RoleViewer: allow,
	},
	ActionUpdateTask: {
		entities.RoleOwner:  allow,
		entities.RoleAdmin:  allow,
		entities.RoleViewer: allowCreatorOnly,
	},
	ActionDeleteTask: {
		entities.RoleOwner: allow,
		entities.RoleAdmin: allow,
	},
}

// Permits reports whether a principal with the given role may perform the
// action. isCreator states whether the principal created the addressed
// resource; it only matters where the table says so.
func Permits(role entities.Role, action Action, isCreator bool) bool {
	switch rules[action][role] {
	case allow:
		return true
	case allowCreatorOnly:
		return isCreator
	default:
		return false
	}
}
