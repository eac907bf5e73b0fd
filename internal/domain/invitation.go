package domain

import (
	"time"

	"github.com/google/uuid"
)

// InvitationID is a value object for invitation identity.
type InvitationID struct{ uuid.UUID }

// NewInvitationID creates a new InvitationID from uuid.
func NewInvitationID(id uuid.UUID) InvitationID { return InvitationID{UUID: id} }

// String returns the canonical string form.
func (i InvitationID) String() string { return i.UUID.String() }

// InvitationStatus is the lifecycle state of a membership invitation.
// Only PENDING is written by this service; the acceptance flow owns the
// rest of the lifecycle.
type InvitationStatus string

const (
	InvitationPending  InvitationStatus = "PENDING"
	InvitationAccepted InvitationStatus = "ACCEPTED"
	InvitationDeclined InvitationStatus = "DECLINED"
	InvitationExpired  InvitationStatus = "EXPIRED"
)

// MembershipInvitation is a pending offer to join an organization, keyed by
// (organization, lower(email)). At most one pending invitation exists per
// pair. ProjectID and ProjectRole are set together or not at all: only when
// a live project and a non-NONE project role were requested.
type MembershipInvitation struct {
	ID             InvitationID
	OrganizationID OrganizationID
	Email          string
	OrgRole        Role
	ProjectID      *ProjectID
	ProjectRole    Role
	Status         InvitationStatus
	CreatedAt      time.Time
}
