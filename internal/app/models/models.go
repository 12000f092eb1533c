package models

import "strings"

// Role is the view a caller has selected for the dashboard
type Role string

const (
	RoleStudent Role = "Student"
	RoleFaculty Role = "Faculty"
	RoleAdmin   Role = "Admin"
)

// Roles lists every selectable role
var Roles = []Role{RoleStudent, RoleFaculty, RoleAdmin}

// ParseRole resolves a role name case-insensitively
func ParseRole(s string) (Role, bool) {
	for _, r := range Roles {
		if strings.EqualFold(string(r), strings.TrimSpace(s)) {
			return r, true
		}
	}
	return "", false
}

// Status is the three-tier risk classification of a student
type Status string

const (
	StatusSafe    Status = "Safe"
	StatusAverage Status = "Average"
	StatusAtRisk  Status = "At-Risk"
)

// Statuses lists every status in display order
var Statuses = []Status{StatusSafe, StatusAverage, StatusAtRisk}

// ParseStatus resolves a status name case-insensitively
func ParseStatus(s string) (Status, bool) {
	for _, st := range Statuses {
		if strings.EqualFold(string(st), strings.TrimSpace(s)) {
			return st, true
		}
	}
	return "", false
}
