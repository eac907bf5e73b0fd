package membership

import (
	"context"

	"github.com/memberd/memberd/internal/application/ports"
	"github.com/memberd/memberd/internal/domain"
)

// ListInvitations returns the pending invitations of an organization.
type ListInvitations struct {
	invitations ports.InvitationRepository
}

// NewListInvitations builds the use case.
func NewListInvitations(invitations ports.InvitationRepository) *ListInvitations {
	return &ListInvitations{invitations: invitations}
}

// Execute is a pass-through to the store.
func (uc *ListInvitations) Execute(ctx context.Context, orgID domain.OrganizationID) ([]*domain.MembershipInvitation, error) {
	return uc.invitations.ListPending(ctx, orgID)
}
