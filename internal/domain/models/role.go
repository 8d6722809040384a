package models

import "strings"

// Role enumerates the caller roles known to the request layer.
type Role string

const (
	RoleEmployee   Role = "employee"
	RoleSupervisor Role = "supervisor"
	RoleAdmin      Role = "admin"
)

// roleRank orders roles; a higher rank inherits access of every lower one.
var roleRank = map[Role]int{
	RoleEmployee:   1,
	RoleSupervisor: 2,
	RoleAdmin:      3,
}

// ParseRole normalizes a role string. Unknown values yield an invalid role.
func ParseRole(value string) Role {
	return Role(strings.ToLower(strings.TrimSpace(value)))
}

// Valid reports whether the role is part of the hierarchy.
func (r Role) Valid() bool {
	_, ok := roleRank[r]
	return ok
}

// HasAccess reports whether a caller holding actual may use a resource that requires required.
func HasAccess(actual, required Role) bool {
	have, ok := roleRank[actual]
	if !ok {
		return false
	}
	need, ok := roleRank[required]
	if !ok {
		return false
	}
	return have >= need
}

// Caller is the authenticated context the request layer passes into the engine.
type Caller struct {
	Role   Role
	UnitID string
}

// IsAdmin reports whether the caller sees every unit.
func (c Caller) IsAdmin() bool {
	return HasAccess(c.Role, RoleAdmin)
}
