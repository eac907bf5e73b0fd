package membership

import (
	"context"
	"strings"

	"github.com/memberd/memberd/internal/application/ports"
	"github.com/memberd/memberd/internal/domain"
	domerrors "github.com/memberd/memberd/internal/domain/errors"
)

// In-memory fakes for the store and collaborator ports. Maps are keyed by
// the same natural keys the real schema constrains.

type fakeOrgRepo struct {
	orgs map[string]*domain.Organization
	err  error
}

func (f *fakeOrgRepo) GetByID(ctx context.Context, orgID domain.OrganizationID) (*domain.Organization, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.orgs[orgID.String()], nil
}

type fakeProjectRepo struct {
	projects map[string]*domain.Project // keyed by project id
}

func (f *fakeProjectRepo) GetByIDInOrg(ctx context.Context, projectID domain.ProjectID, orgID domain.OrganizationID) (*domain.Project, error) {
	p := f.projects[projectID.String()]
	if p == nil || p.OrganizationID != orgID || p.DeletedAt != nil {
		return nil, nil
	}
	return p, nil
}

type fakeUserRepo struct {
	users []*domain.User
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	for _, u := range f.users {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, userID domain.UserID) (*domain.User, error) {
	for _, u := range f.users {
		if u.ID == userID {
			return u, nil
		}
	}
	return nil, nil
}

type fakeMembershipRepo struct {
	orgMemberships  map[string]*domain.OrganizationMembership // orgID:userID
	projMemberships []*domain.ProjectMembership
	withUsers       []*domain.MemberWithUser
	createErr       error
}

func newFakeMembershipRepo() *fakeMembershipRepo {
	return &fakeMembershipRepo{orgMemberships: make(map[string]*domain.OrganizationMembership)}
}

func orgMemberKey(orgID domain.OrganizationID, userID domain.UserID) string {
	return orgID.String() + ":" + userID.String()
}

func (f *fakeMembershipRepo) GetOrgMembership(ctx context.Context, orgID domain.OrganizationID, userID domain.UserID) (*domain.OrganizationMembership, error) {
	return f.orgMemberships[orgMemberKey(orgID, userID)], nil
}

func (f *fakeMembershipRepo) CreateOrgMembership(ctx context.Context, m *domain.OrganizationMembership) error {
	if f.createErr != nil {
		return f.createErr
	}
	key := orgMemberKey(m.OrganizationID, m.UserID)
	if _, ok := f.orgMemberships[key]; ok {
		// Same translation the postgres repo does for SQLSTATE 23505.
		return domerrors.ErrAlreadyMember
	}
	f.orgMemberships[key] = m
	return nil
}

func (f *fakeMembershipRepo) UpsertOrgMembership(ctx context.Context, m *domain.OrganizationMembership) error {
	key := orgMemberKey(m.OrganizationID, m.UserID)
	if existing, ok := f.orgMemberships[key]; ok {
		existing.Role = m.Role
		existing.UpdatedAt = m.UpdatedAt
		return nil
	}
	f.orgMemberships[key] = m
	return nil
}

func (f *fakeMembershipRepo) DeleteOrgMemberships(ctx context.Context, orgID domain.OrganizationID, userID domain.UserID) error {
	delete(f.orgMemberships, orgMemberKey(orgID, userID))
	return nil
}

func (f *fakeMembershipRepo) CreateProjectMembership(ctx context.Context, m *domain.ProjectMembership) error {
	f.projMemberships = append(f.projMemberships, m)
	return nil
}

func (f *fakeMembershipRepo) ListOrgMemberships(ctx context.Context, orgID domain.OrganizationID) ([]*domain.MemberWithUser, error) {
	return f.withUsers, nil
}

type fakeInvitationRepo struct {
	invitations map[string]*domain.MembershipInvitation // orgID:lower(email)
	createErr   error
}

func newFakeInvitationRepo() *fakeInvitationRepo {
	return &fakeInvitationRepo{invitations: make(map[string]*domain.MembershipInvitation)}
}

func invitationKey(orgID domain.OrganizationID, email string) string {
	return orgID.String() + ":" + strings.ToLower(email)
}

func (f *fakeInvitationRepo) GetPending(ctx context.Context, orgID domain.OrganizationID, email string) (*domain.MembershipInvitation, error) {
	return f.invitations[invitationKey(orgID, email)], nil
}

func (f *fakeInvitationRepo) Create(ctx context.Context, inv *domain.MembershipInvitation) error {
	if f.createErr != nil {
		return f.createErr
	}
	key := invitationKey(inv.OrganizationID, inv.Email)
	if _, ok := f.invitations[key]; ok {
		return domerrors.ErrInvitationExists
	}
	f.invitations[key] = inv
	return nil
}

func (f *fakeInvitationRepo) ListPending(ctx context.Context, orgID domain.OrganizationID) ([]*domain.MembershipInvitation, error) {
	var out []*domain.MembershipInvitation
	for _, inv := range f.invitations {
		if inv.OrganizationID == orgID {
			out = append(out, inv)
		}
	}
	return out, nil
}

// fakeAuditRecorder and fakeNotifier share a sequence slice when ordering
// between audit entries and notifications is under test.

type fakeAuditRecorder struct {
	records []ports.AuditRecord
	seq     *[]string
	err     error
}

func (f *fakeAuditRecorder) Record(ctx context.Context, rec ports.AuditRecord) error {
	if f.err != nil {
		return f.err
	}
	f.records = append(f.records, rec)
	if f.seq != nil {
		*f.seq = append(*f.seq, "audit:"+rec.ResourceType)
	}
	return nil
}

type fakeNotifier struct {
	sent []ports.MembershipInvitationEmail
	seq  *[]string
	err  error
}

func (f *fakeNotifier) SendMembershipInvitation(ctx context.Context, email ports.MembershipInvitationEmail) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, email)
	if f.seq != nil {
		*f.seq = append(*f.seq, "notify")
	}
	return nil
}

var (
	_ ports.OrganizationRepository = (*fakeOrgRepo)(nil)
	_ ports.ProjectRepository      = (*fakeProjectRepo)(nil)
	_ ports.UserRepository         = (*fakeUserRepo)(nil)
	_ ports.MembershipRepository   = (*fakeMembershipRepo)(nil)
	_ ports.InvitationRepository   = (*fakeInvitationRepo)(nil)
	_ ports.AuditRecorder          = (*fakeAuditRecorder)(nil)
	_ ports.NotificationGateway    = (*fakeNotifier)(nil)
)
