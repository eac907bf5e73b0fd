package membership

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/memberd/memberd/internal/application/ports"
	"github.com/memberd/memberd/internal/domain"
	domerrors "github.com/memberd/memberd/internal/domain/errors"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// Actor identifies who triggered the operation; its email and name feed
// the invitation notification.
type Actor struct {
	Email string
	Name  string
}

// CreateMembershipInput is one invite request. ProjectRole is only honored
// when ProjectID resolves to a live project in the same organization and
// the role is not NONE.
type CreateMembershipInput struct {
	OrgID       domain.OrganizationID
	Email       string
	Role        domain.Role
	ProjectID   *domain.ProjectID
	ProjectRole domain.Role
	Actor       Actor
}

// MemberView is the created-membership half of the result.
type MemberView struct {
	UserID domain.UserID
	Role   domain.Role
	Email  string
	Name   string
}

// CreateMembershipResult holds exactly one of Membership (the invited email
// matched an existing user) or Invitation (a pending invitation was
// created for a not-yet-registered email).
type CreateMembershipResult struct {
	Membership *MemberView
	Invitation *domain.MembershipInvitation
}

// CreateMembership reconciles an invite request against the current state:
// an existing user becomes a member immediately, an unknown email gets a
// pending invitation, and prior membership or a prior pending invitation is
// a conflict. Conflict checks precede all writes; each write is audited
// before the notification for its branch is dispatched.
type CreateMembership struct {
	orgs        ports.OrganizationRepository
	projects    ports.ProjectRepository
	users       ports.UserRepository
	memberships ports.MembershipRepository
	invitations ports.InvitationRepository
	audit       ports.AuditRecorder
	notifier    ports.NotificationGateway
}

// NewCreateMembership builds the use case.
func NewCreateMembership(
	orgs ports.OrganizationRepository,
	projects ports.ProjectRepository,
	users ports.UserRepository,
	memberships ports.MembershipRepository,
	invitations ports.InvitationRepository,
	audit ports.AuditRecorder,
	notifier ports.NotificationGateway,
) *CreateMembership {
	return &CreateMembership{
		orgs:        orgs,
		projects:    projects,
		users:       users,
		memberships: memberships,
		invitations: invitations,
		audit:       audit,
		notifier:    notifier,
	}
}

// Execute runs the create-membership workflow. There is no transaction
// around the multi-step flow; the store's uniqueness constraints break
// check-then-act races and the repositories report a lost race as the
// same Conflict error the pre-check would have returned.
func (uc *CreateMembership) Execute(ctx context.Context, input CreateMembershipInput) (*CreateMembershipResult, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if !emailRegex.MatchString(email) {
		return nil, domerrors.NewValidation("email", "must be a valid address")
	}
	// Roles are matched case-insensitively but only the canonical form is
	// persisted and compared downstream.
	role, ok := domain.ParseRole(input.Role.String())
	if !ok || role.IsNone() {
		return nil, domerrors.NewValidation("role", "must be one of MEMBER, ADMIN, OWNER")
	}
	input.Role = role
	projectRole := domain.RoleNone
	if !input.ProjectRole.IsNone() {
		projectRole, ok = domain.ParseRole(input.ProjectRole.String())
		if !ok {
			return nil, domerrors.NewValidation("project_role", "unrecognized role")
		}
	}
	input.ProjectRole = projectRole

	org, err := uc.orgs.GetByID(ctx, input.OrgID)
	if err != nil {
		return nil, err
	}
	if org == nil {
		return nil, domerrors.ErrOrganizationNotFound
	}

	// A project role without a project id is ignored; a project id must
	// resolve (live, same org) or the whole operation fails.
	var project *domain.Project
	if input.ProjectID != nil {
		project, err = uc.projects.GetByIDInOrg(ctx, *input.ProjectID, input.OrgID)
		if err != nil {
			return nil, err
		}
		if project == nil {
			return nil, domerrors.ErrProjectNotFound
		}
	}
	wantProjectRole := project != nil && !input.ProjectRole.IsNone()

	user, err := uc.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user != nil {
		return uc.addExistingUser(ctx, org, user, project, input, wantProjectRole)
	}
	return uc.inviteNewUser(ctx, org, email, project, input, wantProjectRole)
}

func (uc *CreateMembership) addExistingUser(ctx context.Context, org *domain.Organization, user *domain.User, project *domain.Project, input CreateMembershipInput, wantProjectRole bool) (*CreateMembershipResult, error) {
	existing, err := uc.memberships.GetOrgMembership(ctx, org.ID, user.ID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domerrors.ErrAlreadyMember
	}

	now := time.Now()
	orgMembership := &domain.OrganizationMembership{
		ID:             domain.NewMembershipID(uuid.New()),
		OrganizationID: org.ID,
		UserID:         user.ID,
		Role:           input.Role,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.memberships.CreateOrgMembership(ctx, orgMembership); err != nil {
		return nil, err
	}
	if err := uc.audit.Record(ctx, ports.AuditRecord{
		ResourceType: ports.ResourceOrgMembership,
		ResourceID:   orgMembership.ID.String(),
		Action:       ports.ActionCreate,
		OrgID:        org.ID,
		OrgRole:      input.Role,
		ActorID:      ports.ActorAPI,
		AfterState:   orgMembership,
	}); err != nil {
		return nil, err
	}

	if wantProjectRole {
		projMembership := &domain.ProjectMembership{
			ID:                       domain.NewMembershipID(uuid.New()),
			ProjectID:                project.ID,
			UserID:                   user.ID,
			Role:                     input.ProjectRole,
			OrganizationMembershipID: orgMembership.ID,
			CreatedAt:                now,
		}
		if err := uc.memberships.CreateProjectMembership(ctx, projMembership); err != nil {
			return nil, err
		}
		if err := uc.audit.Record(ctx, ports.AuditRecord{
			ResourceType: ports.ResourceProjectMembership,
			ResourceID:   projMembership.ID.String(),
			Action:       ports.ActionCreate,
			OrgID:        org.ID,
			OrgRole:      input.Role,
			ActorID:      ports.ActorAPI,
			AfterState:   projMembership,
		}); err != nil {
			return nil, err
		}
	}

	if err := uc.notifier.SendMembershipInvitation(ctx, ports.MembershipInvitationEmail{
		InviterEmail: input.Actor.Email,
		InviterName:  input.Actor.Name,
		To:           user.Email,
		OrgName:      org.Name,
		OrgID:        org.ID.String(),
		UserExists:   true,
	}); err != nil {
		return nil, err
	}

	return &CreateMembershipResult{Membership: &MemberView{
		UserID: user.ID,
		Role:   input.Role,
		Email:  user.Email,
		Name:   user.Name,
	}}, nil
}

func (uc *CreateMembership) inviteNewUser(ctx context.Context, org *domain.Organization, email string, project *domain.Project, input CreateMembershipInput, wantProjectRole bool) (*CreateMembershipResult, error) {
	pending, err := uc.invitations.GetPending(ctx, org.ID, email)
	if err != nil {
		return nil, err
	}
	if pending != nil {
		return nil, domerrors.ErrInvitationExists
	}

	inv := &domain.MembershipInvitation{
		ID:             domain.NewInvitationID(uuid.New()),
		OrganizationID: org.ID,
		Email:          email,
		OrgRole:        input.Role,
		ProjectRole:    domain.RoleNone,
		Status:         domain.InvitationPending,
		CreatedAt:      time.Now(),
	}
	if wantProjectRole {
		pid := project.ID
		inv.ProjectID = &pid
		inv.ProjectRole = input.ProjectRole
	}
	if err := uc.invitations.Create(ctx, inv); err != nil {
		return nil, err
	}
	if err := uc.audit.Record(ctx, ports.AuditRecord{
		ResourceType: ports.ResourceInvitation,
		ResourceID:   inv.ID.String(),
		Action:       ports.ActionCreate,
		OrgID:        org.ID,
		OrgRole:      input.Role,
		ActorID:      ports.ActorAPI,
		AfterState:   inv,
	}); err != nil {
		return nil, err
	}

	if err := uc.notifier.SendMembershipInvitation(ctx, ports.MembershipInvitationEmail{
		InviterEmail: input.Actor.Email,
		InviterName:  input.Actor.Name,
		To:           email,
		OrgName:      org.Name,
		OrgID:        org.ID.String(),
		UserExists:   false,
	}); err != nil {
		return nil, err
	}

	return &CreateMembershipResult{Invitation: inv}, nil
}
