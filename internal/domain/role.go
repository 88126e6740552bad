package domain

import "strings"

// Role is the closed set of account roles.
type Role string

const (
	RoleAdmin     Role = "admin"
	RoleHR        Role = "hr"
	RoleEmployee  Role = "employee"
	RoleCandidate Role = "candidate"
)

// AllRoles lists every valid role.
var AllRoles = []Role{RoleAdmin, RoleHR, RoleEmployee, RoleCandidate}

// ParseRole converts s into a Role, rejecting anything outside the closed set.
func ParseRole(s string) (Role, error) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	switch r {
	case RoleAdmin, RoleHR, RoleEmployee, RoleCandidate:
		return r, nil
	}
	return "", NewValidationError("invalid role: " + s)
}

// Permission is a capability checked by the API guard.
type Permission int

const (
	PermManageUsers Permission = iota
	PermManageRecruitment
	PermManageTraining
	PermViewTraining
	PermViewJobs
)

// Can reports whether the role holds the permission.
func (r Role) Can(p Permission) bool {
	switch r {
	case RoleAdmin:
		return true
	case RoleHR:
		return p != PermManageUsers
	case RoleEmployee:
		return p == PermViewTraining || p == PermViewJobs
	case RoleCandidate:
		return p == PermViewJobs
	default:
		return false
	}
}
