package membership

import (
	"context"

	"github.com/memberd/memberd/internal/application/ports"
	"github.com/memberd/memberd/internal/domain"
)

// RemoveMembership deletes any membership matching (orgID, userID).
// Idempotent: absence of a matching row is still success. Project
// memberships referencing the deleted row are cascaded by the store's
// foreign key, not by application logic.
type RemoveMembership struct {
	memberships ports.MembershipRepository
}

// NewRemoveMembership builds the use case.
func NewRemoveMembership(memberships ports.MembershipRepository) *RemoveMembership {
	return &RemoveMembership{memberships: memberships}
}

// Execute deletes and reports success regardless of prior existence.
func (uc *RemoveMembership) Execute(ctx context.Context, orgID domain.OrganizationID, userID domain.UserID) error {
	return uc.memberships.DeleteOrgMemberships(ctx, orgID, userID)
}
