// Package access maps user roles to the actions they may perform.
package access

import (
	"errors"
	"fmt"
	"strings"
)

// ErrForbidden is returned when a role may not perform an action.
var ErrForbidden = errors.New("forbidden")

// Role of the acting user.
type Role string

const (
	RoleAdmin     Role = "admin"
	RoleDeveloper Role = "developer"
	RoleUser      Role = "user"
)

// Action is an operation on training records.
type Action string

const (
	ActionView    Action = "view"
	ActionExtract Action = "extract"
	ActionEdit    Action = "edit"
	ActionExport  Action = "export"
	ActionApprove Action = "approve"
	ActionDelete  Action = "delete"
)

var policy = map[Role]map[Action]bool{
	RoleAdmin: {
		ActionView: true, ActionExtract: true, ActionEdit: true,
		ActionExport: true, ActionApprove: true, ActionDelete: true,
	},
	RoleDeveloper: {
		ActionView: true, ActionExtract: true, ActionEdit: true, ActionExport: true,
	},
	RoleUser: {
		ActionView: true, ActionExtract: true,
	},
}

// ParseRole parses a role name, case-insensitively.
func ParseRole(s string) (Role, error) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := policy[r]; !ok {
		return "", fmt.Errorf("unknown role %q", s)
	}
	return r, nil
}

// Allowed reports whether role may perform action.
func Allowed(role Role, action Action) bool {
	return policy[role][action]
}

// Check returns ErrForbidden wrapped with the role and action when not allowed.
func Check(role Role, action Action) error {
	if !Allowed(role, action) {
		return fmt.Errorf("%w: role %q cannot %s", ErrForbidden, role, action)
	}
	return nil
}
