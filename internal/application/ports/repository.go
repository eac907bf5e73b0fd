package ports

import (
	"context"

	"github.com/memberd/memberd/internal/domain"
)

// OrganizationRepository defines read access to organizations.
type OrganizationRepository interface {
	GetByID(ctx context.Context, orgID domain.OrganizationID) (*domain.Organization, error)
}

// ProjectRepository defines read access to projects.
type ProjectRepository interface {
	// GetByIDInOrg resolves a project scoped to an organization, excluding
	// soft-deleted rows. Returns (nil, nil) when absent.
	GetByIDInOrg(ctx context.Context, projectID domain.ProjectID, orgID domain.OrganizationID) (*domain.Project, error)
}

// UserRepository defines read access to platform users.
type UserRepository interface {
	// GetByEmail matches case-insensitively. Returns (nil, nil) when absent.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, userID domain.UserID) (*domain.User, error)
}

// MembershipRepository defines persistence for organization and project
// memberships. Create methods must surface a uniqueness-constraint
// violation as the matching Conflict sentinel, so a lost check-then-act
// race reports the same error as the pre-check.
type MembershipRepository interface {
	GetOrgMembership(ctx context.Context, orgID domain.OrganizationID, userID domain.UserID) (*domain.OrganizationMembership, error)
	CreateOrgMembership(ctx context.Context, m *domain.OrganizationMembership) error
	UpsertOrgMembership(ctx context.Context, m *domain.OrganizationMembership) error
	// DeleteOrgMemberships is a no-op if nothing matches.
	DeleteOrgMemberships(ctx context.Context, orgID domain.OrganizationID, userID domain.UserID) error
	CreateProjectMembership(ctx context.Context, m *domain.ProjectMembership) error
	ListOrgMemberships(ctx context.Context, orgID domain.OrganizationID) ([]*domain.MemberWithUser, error)
}

// InvitationRepository defines persistence for pending membership
// invitations, keyed by (organization, lower(email)).
type InvitationRepository interface {
	GetPending(ctx context.Context, orgID domain.OrganizationID, email string) (*domain.MembershipInvitation, error)
	Create(ctx context.Context, inv *domain.MembershipInvitation) error
	ListPending(ctx context.Context, orgID domain.OrganizationID) ([]*domain.MembershipInvitation, error)
}
