package membership

import (
	"context"

	"github.com/memberd/memberd/internal/application/ports"
	"github.com/memberd/memberd/internal/domain"
)

// ListMemberships returns every membership of an organization joined with
// the owning user, in store-defined order.
type ListMemberships struct {
	memberships ports.MembershipRepository
}

// NewListMemberships builds the use case.
func NewListMemberships(memberships ports.MembershipRepository) *ListMemberships {
	return &ListMemberships{memberships: memberships}
}

// Execute is a pass-through to the store.
func (uc *ListMemberships) Execute(ctx context.Context, orgID domain.OrganizationID) ([]*domain.MemberWithUser, error) {
	return uc.memberships.ListOrgMemberships(ctx, orgID)
}
