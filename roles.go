package auth

import "strings"

// AdminRole is a member's administrative role tag. A member holds at most one
// tag; the effective capability set is always computed through ExpandRoles and
// never stored.
type AdminRole = string

const (
	// RoleAdmin inherits every other administrative role
	RoleAdmin AdminRole = "admin"
	// RoleTreasurer manages league finances
	RoleTreasurer AdminRole = "treasurer"
	// RoleCourseCoordinator manages course scheduling
	RoleCourseCoordinator AdminRole = "course_coordinator"
	// RoleTournamentCoordinator manages tournament setup
	RoleTournamentCoordinator AdminRole = "tournament_coordinator"
)

// AllRoles returns the closed set of administrative roles
func AllRoles() []AdminRole {
	return []AdminRole{
		RoleAdmin,
		RoleTreasurer,
		RoleCourseCoordinator,
		RoleTournamentCoordinator,
	}
}

// IsValidRole checks if the role is one of the predefined valid roles
func IsValidRole(r AdminRole) bool {
	switch r {
	case RoleAdmin, RoleTreasurer, RoleCourseCoordinator, RoleTournamentCoordinator:
		return true
	default:
		return false
	}
}

// ParseRole safely parses a string into an AdminRole
func ParseRole(roleStr string) (AdminRole, bool) {
	role := AdminRole(roleStr)
	return role, IsValidRole(role)
}

// RoleSet is the computed set of roles a member effectively holds
type RoleSet map[AdminRole]struct{}

// Has checks membership of a single role
func (s RoleSet) Has(role AdminRole) bool {
	_, ok := s[role]
	return ok
}

// Intersects reports whether any of the given roles is in the set
func (s RoleSet) Intersects(roles []AdminRole) bool {
	for _, role := range roles {
		if s.Has(role) {
			return true
		}
	}
	return false
}

// ExpandRoles computes the effective role set for a stored role tag.
// Inheritance is single-level and non-transitive: admin expands to the full
// closed set, any other tag expands to itself only, and an absent tag expands
// to the empty set.
func ExpandRoles(role AdminRole) RoleSet {
	expanded := RoleSet{}

	if role == "" {
		return expanded
	}

	if role == RoleAdmin {
		for _, r := range AllRoles() {
			expanded[r] = struct{}{}
		}
		return expanded
	}

	expanded[role] = struct{}{}
	return expanded
}

// RoleLabel renders a role tag in human readable form, e.g.
// "course_coordinator" becomes "Course Coordinator".
func RoleLabel(role AdminRole) string {
	words := strings.Split(string(role), "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
