package auth

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// selfOrAdminDenied is deliberately distinct from the role denial messages
const selfOrAdminDenied = "Access denied. You can only access your own data unless you have administrative privileges."

// RoleCheck is an authorization decision point comparing a caller's expanded
// roles against an endpoint's requirements.
type RoleCheck struct {
	required []AdminRole
}

// RequireRoles constructs a check that allows callers holding any of the
// given roles. An empty requirement allows everyone authenticated.
func RequireRoles(roles ...AdminRole) RoleCheck {
	return RoleCheck{required: roles}
}

// Required exposes the configured requirement
func (c RoleCheck) Required() []AdminRole {
	return c.required
}

// Check allows when no roles are required or when the caller's expanded set
// intersects the requirement; otherwise it denies with a message naming the
// missing role(s).
func (c RoleCheck) Check(roles RoleSet) error {
	if len(c.required) == 0 {
		return nil
	}

	if roles.Intersects(c.required) {
		return nil
	}

	if len(c.required) == 1 {
		return accessDeniedError(fmt.Sprintf(
			"Access denied. This endpoint requires %s role.",
			RoleLabel(c.required[0]),
		))
	}

	labels := make([]string, len(c.required))
	for i, role := range c.required {
		labels[i] = RoleLabel(role)
	}

	return accessDeniedError(fmt.Sprintf(
		"Access denied. This endpoint requires one of the following roles: %s.",
		strings.Join(labels, ", "),
	))
}

// CheckMember expands the member's stored role tag and runs the check
func (c RoleCheck) CheckMember(member *Member) error {
	if member == nil {
		return accessDeniedError(selfOrAdminDenied)
	}
	return c.Check(ExpandRoles(member.Role))
}

// SelfOrAdminCheck allows a member to reach their own record, or any member
// of the admin family to reach anyone's.
type SelfOrAdminCheck struct {
	target uuid.UUID
}

// RequireSelfOrAdmin constructs a check for the member record targetID
func RequireSelfOrAdmin(targetID uuid.UUID) SelfOrAdminCheck {
	return SelfOrAdminCheck{target: targetID}
}

// Check allows when the caller is the target member or holds any
// administrative role after expansion.
func (c SelfOrAdminCheck) Check(caller *Member) error {
	if caller == nil {
		return accessDeniedError(selfOrAdminDenied)
	}

	if caller.ID == c.target {
		return nil
	}

	if len(ExpandRoles(caller.Role)) > 0 {
		return nil
	}

	return accessDeniedError(selfOrAdminDenied)
}
