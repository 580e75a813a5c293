package models

import "strings"

// Role selects which consultation collection an operation targets.
type Role string

const (
	RoleEmployer Role = "employer"
	RoleSeeker   Role = "seeker"
)

// Roles lists every role in display order.
func Roles() []Role {
	return []Role{RoleEmployer, RoleSeeker}
}

// ParseRole normalizes a role coming from a query string or user input.
// Anything that is not "employer" falls back to the seeker collection,
// matching how the intake API has always routed requests.
func ParseRole(s string) Role {
	if strings.ToLower(strings.TrimSpace(s)) == string(RoleEmployer) {
		return RoleEmployer
	}
	return RoleSeeker
}

// IsValid reports whether r names one of the two known roles.
func (r Role) IsValid() bool {
	return r == RoleEmployer || r == RoleSeeker
}

// Collection returns the MongoDB collection backing the role.
func (r Role) Collection() string {
	if r == RoleEmployer {
		return "employer"
	}
	return "seeker"
}

func (r Role) String() string { return string(r) }
