package domain

import (
	"fmt"
	"strings"
	"time"
)

// Role is one of a fixed, closed set of role names.
type Role string

const (
	// RoleNone marks a route that only requires an authenticated caller.
	RoleNone Role = ""

	RoleUser    Role = "USER"
	RoleAdmin   Role = "ADMIN"
	RoleManager Role = "MANAGER"
)

// DefaultRole is assigned to every newly registered user.
const DefaultRole = RoleUser

// KnownRoles lists the registry in seed order.
var KnownRoles = []Role{RoleUser, RoleAdmin, RoleManager}

// RoleRecord is a persisted entry of the role registry.
type RoleRecord struct {
	ID        string    `json:"id"`
	Name      Role      `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// IsKnown reports whether r belongs to the closed role set.
func (r Role) IsKnown() bool {
	return containsRole(KnownRoles, r)
}

func (r Role) String() string {
	return string(r)
}

// ParseRole normalises s and checks it against the closed set.
func ParseRole(s string) (Role, error) {
	r := Role(strings.ToUpper(strings.TrimSpace(s)))
	if !r.IsKnown() {
		return RoleNone, fmt.Errorf("%w: %q", ErrUnknownRole, s)
	}
	return r, nil
}

// ParseRoles parses every name in order, failing on the first unknown one.
func ParseRoles(names []string) ([]Role, error) {
	roles := make([]Role, 0, len(names))
	for _, n := range names {
		r, err := ParseRole(n)
		if err != nil {
			return nil, err
		}
		roles = append(roles, r)
	}
	return roles, nil
}

// RoleNames converts roles to their string form, e.g. for storage.
func RoleNames(roles []Role) []string {
	names := make([]string, len(roles))
	for i, r := range roles {
		names[i] = string(r)
	}
	return names
}

func containsRole(roles []Role, role Role) bool {
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}
