package membership

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/memberd/memberd/internal/application/ports"
	"github.com/memberd/memberd/internal/domain"
	domerrors "github.com/memberd/memberd/internal/domain/errors"
)

// UpsertMembershipInput identifies the target row and the role to apply.
type UpsertMembershipInput struct {
	OrgID  domain.OrganizationID
	UserID domain.UserID
	Role   domain.Role
}

// UpsertMembership sets a member's organization role, creating the
// membership if absent. Unlike create, this path has no audit or
// notification side effects; keep that asymmetry.
type UpsertMembership struct {
	users       ports.UserRepository
	memberships ports.MembershipRepository
}

// NewUpsertMembership builds the use case.
func NewUpsertMembership(users ports.UserRepository, memberships ports.MembershipRepository) *UpsertMembership {
	return &UpsertMembership{users: users, memberships: memberships}
}

// Execute upserts keyed on (orgID, userID) and returns the resulting view.
func (uc *UpsertMembership) Execute(ctx context.Context, input UpsertMembershipInput) (*MemberView, error) {
	role, ok := domain.ParseRole(input.Role.String())
	if !ok || role.IsNone() {
		return nil, domerrors.NewValidation("role", "must be one of MEMBER, ADMIN, OWNER")
	}
	input.Role = role
	user, err := uc.users.GetByID(ctx, input.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domerrors.ErrUserNotFound
	}
	now := time.Now()
	m := &domain.OrganizationMembership{
		ID:             domain.NewMembershipID(uuid.New()),
		OrganizationID: input.OrgID,
		UserID:         input.UserID,
		Role:           input.Role,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.memberships.UpsertOrgMembership(ctx, m); err != nil {
		return nil, err
	}
	return &MemberView{
		UserID: user.ID,
		Role:   input.Role,
		Email:  user.Email,
		Name:   user.Name,
	}, nil
}
