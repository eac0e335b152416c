package model

import (
	"errors"
	"strings"
)

var ErrUnknownRole = errors.New("unknown role")

// Role is the coarse-grained permission class of a user.
// The set of roles is closed: adding one means extending every switch below.
type Role uint8

const (
	RoleUser Role = iota + 1
	RoleAdmin
)

// Valid reports whether r is one of the declared roles. The zero value is not.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleAdmin:
		return true
	}
	return false
}

func (r Role) String() string {
	switch r {
	case RoleUser:
		return "user"
	case RoleAdmin:
		return "admin"
	}
	return "invalid"
}

// ParseRole converts a stored role name back into a Role.
func ParseRole(s string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "user":
		return RoleUser, nil
	case "admin":
		return RoleAdmin, nil
	}
	return 0, ErrUnknownRole
}

// MarshalText encodes the role by name so JSON responses stay readable.
func (r Role) MarshalText() ([]byte, error) {
	if !r.Valid() {
		return nil, ErrUnknownRole
	}
	return []byte(r.String()), nil
}

func (r *Role) UnmarshalText(b []byte) error {
	parsed, err := ParseRole(string(b))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// RoleSet is a set of roles permitted to reach a route.
type RoleSet struct {
	user  bool
	admin bool
}

// NewRoleSet builds a set from the given roles. Invalid roles are ignored.
func NewRoleSet(roles ...Role) RoleSet {
	var s RoleSet
	for _, r := range roles {
		switch r {
		case RoleUser:
			s.user = true
		case RoleAdmin:
			s.admin = true
		}
	}
	return s
}

// Contains reports whether r is a member of the set.
func (s RoleSet) Contains(r Role) bool {
	switch r {
	case RoleUser:
		return s.user
	case RoleAdmin:
		return s.admin
	}
	return false
}
