package model

import "fmt"

// Role is the privilege level of an account. Roles are totally ordered:
// user < moderator < admin.
type Role string

const (
	RoleUser      Role = "user"
	RoleModerator Role = "moderator"
	RoleAdmin     Role = "admin"
)

var roleLevels = map[Role]int{
	RoleUser:      1,
	RoleModerator: 2,
	RoleAdmin:     3,
}

// ParseRole converts s into a Role, rejecting unknown values
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if !r.Valid() {
		return "", fmt.Errorf("unknown role %q", s)
	}

	return r, nil
}

func (r Role) Valid() bool {
	_, ok := roleLevels[r]
	return ok
}

// AtLeast reports whether r grants at least the privileges of o.
// Unknown roles never satisfy anything.
func (r Role) AtLeast(o Role) bool {
	lvl, ok := roleLevels[r]
	if !ok {
		return false
	}

	return lvl >= roleLevels[o]
}
