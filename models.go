package auth

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// MemberStatus is the membership status that gates authentication
type MemberStatus = string

const (
	// MemberStatusActive members can authenticate and participate
	MemberStatusActive MemberStatus = "active"
	// MemberStatusInactive members keep their record but cannot authenticate
	MemberStatusInactive MemberStatus = "inactive"
)

// Member is the league member model. Only the identity and security fields
// live here; league-specific attributes (handicap, balance, tee eligibility)
// belong to other services.
type Member struct {
	bun.BaseModel `bun:"table:members,alias:mbr"`

	ID           uuid.UUID    `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	Email        string       `bun:"email,notnull,unique" json:"email,omitempty"`
	PasswordHash string       `bun:"password_hash,notnull" json:"-"`
	FirstName    string       `bun:"first_name" json:"first_name,omitempty"`
	LastName     string       `bun:"last_name" json:"last_name,omitempty"`
	Status       MemberStatus `bun:"member_status,notnull" json:"member_status,omitempty"`
	Role         AdminRole    `bun:"admin_role,nullzero" json:"admin_role,omitempty"`

	// Security fields for account lockout
	FailedLoginAttempts int        `bun:"failed_login_attempts,notnull,default:0" json:"failed_login_attempts,omitempty"`
	LockedUntil         *time.Time `bun:"locked_until,nullzero" json:"locked_until,omitempty"`

	CreatedAt *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt *time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
}

// EnsureStatus normalizes a missing status to active, matching legacy rows
// created before the column existed.
func (m *Member) EnsureStatus() {
	if m.Status == "" {
		m.Status = MemberStatusActive
	}
}

// IsActive reports whether the member may authenticate
func (m *Member) IsActive() bool {
	m.EnsureStatus()
	return m.Status == MemberStatusActive
}

// FullName is the member's display name
func (m *Member) FullName() string {
	if m.FirstName == "" {
		return m.LastName
	}
	if m.LastName == "" {
		return m.FirstName
	}
	return m.FirstName + " " + m.LastName
}

// Identity adapter so a Member can flow through token issuance

type memberIdentity struct {
	id    string
	email string
	role  AdminRole
}

func (a memberIdentity) ID() string      { return a.id }
func (a memberIdentity) Email() string   { return a.email }
func (a memberIdentity) Role() AdminRole { return a.role }

var _ Identity = memberIdentity{}

// AsIdentity returns the member's identity view used for token claims
func (m *Member) AsIdentity() Identity {
	return memberIdentity{
		id:    m.ID.String(),
		email: m.Email,
		role:  m.Role,
	}
}
