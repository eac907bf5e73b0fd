package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Role is a permission level within an organization or project.
// RoleNone is a valid input value meaning "no role requested"; it is never
// persisted on a membership row.
type Role string

const (
	RoleNone   Role = "NONE"
	RoleMember Role = "MEMBER"
	RoleAdmin  Role = "ADMIN"
	RoleOwner  Role = "OWNER"
)

var roleRank = map[Role]int{
	RoleNone:   0,
	RoleMember: 1,
	RoleAdmin:  2,
	RoleOwner:  3,
}

// ParseRole normalizes and validates a role string.
func ParseRole(s string) (Role, bool) {
	r := Role(strings.ToUpper(strings.TrimSpace(s)))
	_, ok := roleRank[r]
	return r, ok
}

// IsNone reports whether the role means "no role requested".
func (r Role) IsNone() bool { return r == RoleNone || r == "" }

// String returns the canonical string form.
func (r Role) String() string { return string(r) }

// MembershipID is a value object for membership identity.
type MembershipID struct{ uuid.UUID }

// NewMembershipID creates a new MembershipID from uuid.
func NewMembershipID(id uuid.UUID) MembershipID { return MembershipID{UUID: id} }

// String returns the canonical string form.
func (m MembershipID) String() string { return m.UUID.String() }

// OrganizationMembership relates one user to one organization with a role.
// At most one membership exists per (organization, user) pair; the store's
// uniqueness constraint on that pair is the invariant's final arbiter.
type OrganizationMembership struct {
	ID             MembershipID
	OrganizationID OrganizationID
	UserID         UserID
	Role           Role
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// ProjectMembership relates one user to one project with a role. It carries
// a back-reference to the organization membership that authorized it and
// must never outlive that membership.
type ProjectMembership struct {
	ID                       MembershipID
	ProjectID                ProjectID
	UserID                   UserID
	Role                     Role
	OrganizationMembershipID MembershipID
	CreatedAt                time.Time
}

// MemberWithUser joins an organization membership with its owning user for
// listings.
type MemberWithUser struct {
	Membership OrganizationMembership
	User       User
}
