package membership

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/memberd/memberd/internal/application/ports"
	"github.com/memberd/memberd/internal/domain"
	domerrors "github.com/memberd/memberd/internal/domain/errors"
)

type createFixture struct {
	orgs        *fakeOrgRepo
	projects    *fakeProjectRepo
	users       *fakeUserRepo
	memberships *fakeMembershipRepo
	invitations *fakeInvitationRepo
	audit       *fakeAuditRecorder
	notifier    *fakeNotifier
	uc          *CreateMembership

	orgID     domain.OrganizationID
	projectID domain.ProjectID
}

func newCreateFixture() *createFixture {
	f := &createFixture{
		orgs:        &fakeOrgRepo{orgs: make(map[string]*domain.Organization)},
		projects:    &fakeProjectRepo{projects: make(map[string]*domain.Project)},
		users:       &fakeUserRepo{},
		memberships: newFakeMembershipRepo(),
		invitations: newFakeInvitationRepo(),
		audit:       &fakeAuditRecorder{},
		notifier:    &fakeNotifier{},
	}
	f.orgID = domain.NewOrganizationID(uuid.New())
	f.orgs.orgs[f.orgID.String()] = &domain.Organization{ID: f.orgID, Name: "Acme"}
	f.projectID = domain.NewProjectID(uuid.New())
	f.projects.projects[f.projectID.String()] = &domain.Project{
		ID:             f.projectID,
		OrganizationID: f.orgID,
		Name:           "Rockets",
	}
	f.uc = NewCreateMembership(f.orgs, f.projects, f.users, f.memberships, f.invitations, f.audit, f.notifier)
	return f
}

func (f *createFixture) addUser(email, name string) *domain.User {
	u := &domain.User{ID: domain.NewUserID(uuid.New()), Email: email, Name: name}
	f.users.users = append(f.users.users, u)
	return u
}

func TestCreateMembership_NewUser_CreatesPendingInvitation(t *testing.T) {
	f := newCreateFixture()

	res, err := f.uc.Execute(context.Background(), CreateMembershipInput{
		OrgID: f.orgID,
		Email: "new@x.com",
		Role:  domain.RoleMember,
		Actor: Actor{Email: "owner@acme.com", Name: "Org Owner"},
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if res.Membership != nil {
		t.Fatal("expected invitation result, got membership")
	}
	inv := res.Invitation
	if inv == nil {
		t.Fatal("expected invitation in result")
	}
	if inv.Email != "new@x.com" {
		t.Errorf("invitation email = %q, want %q", inv.Email, "new@x.com")
	}
	if inv.OrgRole != domain.RoleMember {
		t.Errorf("invitation role = %q, want MEMBER", inv.OrgRole)
	}
	if inv.Status != domain.InvitationPending {
		t.Errorf("invitation status = %q, want PENDING", inv.Status)
	}
	if inv.ProjectID != nil || !inv.ProjectRole.IsNone() {
		t.Error("invitation should carry no project scope when none requested")
	}
	if len(f.invitations.invitations) != 1 {
		t.Errorf("invitation rows = %d, want 1", len(f.invitations.invitations))
	}
	if len(f.audit.records) != 1 {
		t.Fatalf("audit records = %d, want 1", len(f.audit.records))
	}
	if f.audit.records[0].ResourceType != ports.ResourceInvitation {
		t.Errorf("audit resource = %q, want %q", f.audit.records[0].ResourceType, ports.ResourceInvitation)
	}
	if f.audit.records[0].ActorID != ports.ActorAPI {
		t.Errorf("audit actor = %q, want %q", f.audit.records[0].ActorID, ports.ActorAPI)
	}
	if len(f.notifier.sent) != 1 {
		t.Fatalf("notifications = %d, want 1", len(f.notifier.sent))
	}
	if f.notifier.sent[0].UserExists {
		t.Error("notification user_exists = true, want false")
	}
	if f.notifier.sent[0].To != "new@x.com" {
		t.Errorf("notification to = %q, want %q", f.notifier.sent[0].To, "new@x.com")
	}
	if f.notifier.sent[0].InviterEmail != "owner@acme.com" {
		t.Errorf("notification inviter = %q", f.notifier.sent[0].InviterEmail)
	}
}

func TestCreateMembership_ExistingUser_CreatesMembership(t *testing.T) {
	f := newCreateFixture()
	u := f.addUser("existing@x.com", "Ada")

	res, err := f.uc.Execute(context.Background(), CreateMembershipInput{
		OrgID: f.orgID,
		Email: "existing@x.com",
		Role:  domain.RoleAdmin,
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if res.Invitation != nil {
		t.Fatal("expected membership result, got invitation")
	}
	m := res.Membership
	if m == nil {
		t.Fatal("expected membership in result")
	}
	if m.UserID != u.ID {
		t.Errorf("member user id = %s, want %s", m.UserID, u.ID)
	}
	if m.Role != domain.RoleAdmin {
		t.Errorf("member role = %q, want ADMIN", m.Role)
	}
	if m.Email != "existing@x.com" || m.Name != "Ada" {
		t.Errorf("member view = %q/%q", m.Email, m.Name)
	}
	if len(f.memberships.orgMemberships) != 1 {
		t.Errorf("org membership rows = %d, want 1", len(f.memberships.orgMemberships))
	}
	if len(f.memberships.projMemberships) != 0 {
		t.Errorf("project membership rows = %d, want 0", len(f.memberships.projMemberships))
	}
	if len(f.audit.records) != 1 {
		t.Errorf("audit records = %d, want 1", len(f.audit.records))
	}
	if len(f.notifier.sent) != 1 || !f.notifier.sent[0].UserExists {
		t.Error("expected one notification with user_exists = true")
	}
	if len(f.invitations.invitations) != 0 {
		t.Error("no invitation row expected for existing user")
	}
}

func TestCreateMembership_EmailMatchIsCaseInsensitive(t *testing.T) {
	f := newCreateFixture()
	f.addUser("Existing@X.com", "Ada")

	res, err := f.uc.Execute(context.Background(), CreateMembershipInput{
		OrgID: f.orgID,
		Email: "EXISTING@x.COM",
		Role:  domain.RoleMember,
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if res.Membership == nil {
		t.Fatal("expected the existing-user branch despite case difference")
	}
}

func TestCreateMembership_ExistingUser_WithProjectRole(t *testing.T) {
	f := newCreateFixture()
	u := f.addUser("existing@x.com", "Ada")

	pid := f.projectID
	res, err := f.uc.Execute(context.Background(), CreateMembershipInput{
		OrgID:       f.orgID,
		Email:       "existing@x.com",
		Role:        domain.RoleAdmin,
		ProjectID:   &pid,
		ProjectRole: domain.RoleMember,
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if res.Membership == nil {
		t.Fatal("expected membership result")
	}
	if len(f.memberships.projMemberships) != 1 {
		t.Fatalf("project membership rows = %d, want 1", len(f.memberships.projMemberships))
	}
	pm := f.memberships.projMemberships[0]
	if pm.ProjectID != f.projectID || pm.UserID != u.ID || pm.Role != domain.RoleMember {
		t.Errorf("project membership = %+v", pm)
	}
	orgM := f.memberships.orgMemberships[orgMemberKey(f.orgID, u.ID)]
	if orgM == nil || pm.OrganizationMembershipID != orgM.ID {
		t.Error("project membership must back-reference the org membership")
	}
	if len(f.audit.records) != 2 {
		t.Fatalf("audit records = %d, want 2", len(f.audit.records))
	}
	if f.audit.records[0].ResourceType != ports.ResourceOrgMembership ||
		f.audit.records[1].ResourceType != ports.ResourceProjectMembership {
		t.Errorf("audit order = %q, %q", f.audit.records[0].ResourceType, f.audit.records[1].ResourceType)
	}
}

func TestCreateMembership_AuditPrecedesNotification(t *testing.T) {
	var seq []string
	f := newCreateFixture()
	f.audit.seq = &seq
	f.notifier.seq = &seq
	f.addUser("existing@x.com", "Ada")

	pid := f.projectID
	_, err := f.uc.Execute(context.Background(), CreateMembershipInput{
		OrgID:       f.orgID,
		Email:       "existing@x.com",
		Role:        domain.RoleAdmin,
		ProjectID:   &pid,
		ProjectRole: domain.RoleMember,
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	want := []string{
		"audit:" + ports.ResourceOrgMembership,
		"audit:" + ports.ResourceProjectMembership,
		"notify",
	}
	if len(seq) != len(want) {
		t.Fatalf("sequence = %v, want %v", seq, want)
	}
	for i := range want {
		if seq[i] != want[i] {
			t.Fatalf("sequence = %v, want %v", seq, want)
		}
	}
}

func TestCreateMembership_ProjectRoleSkipped(t *testing.T) {
	deletedID := domain.NewProjectID(uuid.New())

	testCases := []struct {
		name        string
		projectID   *domain.ProjectID
		projectRole domain.Role
		wantErr     error
	}{
		{"role NONE with valid project", nil, domain.RoleNone, nil}, // projectID set below
		{"role without project id", nil, domain.RoleMember, nil},
		{"deleted project", &deletedID, domain.RoleMember, domerrors.ErrProjectNotFound},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			f := newCreateFixture()
			f.addUser("existing@x.com", "Ada")
			now := time.Now()
			f.projects.projects[deletedID.String()] = &domain.Project{
				ID:             deletedID,
				OrganizationID: f.orgID,
				DeletedAt:      &now,
			}
			input := CreateMembershipInput{
				OrgID:       f.orgID,
				Email:       "existing@x.com",
				Role:        domain.RoleAdmin,
				ProjectID:   tc.projectID,
				ProjectRole: tc.projectRole,
			}
			if tc.name == "role NONE with valid project" {
				pid := f.projectID
				input.ProjectID = &pid
			}

			_, err := f.uc.Execute(context.Background(), input)
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("err = %v, want %v", err, tc.wantErr)
				}
			} else if err != nil {
				t.Fatalf("Execute: %v", err)
			}
			if len(f.memberships.projMemberships) != 0 {
				t.Errorf("project membership rows = %d, want 0", len(f.memberships.projMemberships))
			}
		})
	}
}

func TestCreateMembership_NormalizesRoleCase(t *testing.T) {
	f := newCreateFixture()
	u := f.addUser("existing@x.com", "Ada")

	pid := f.projectID
	res, err := f.uc.Execute(context.Background(), CreateMembershipInput{
		OrgID:       f.orgID,
		Email:       "existing@x.com",
		Role:        domain.Role("member"),
		ProjectID:   &pid,
		ProjectRole: domain.Role("none"),
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if res.Membership.Role != domain.RoleMember {
		t.Errorf("result role = %q, want %q", res.Membership.Role, domain.RoleMember)
	}
	stored := f.memberships.orgMemberships[orgMemberKey(f.orgID, u.ID)]
	if stored.Role != domain.RoleMember {
		t.Errorf("stored role = %q, want %q", stored.Role, domain.RoleMember)
	}
	// A case-variant "none" project role is still no project role.
	if len(f.memberships.projMemberships) != 0 {
		t.Errorf("project membership rows = %d, want 0", len(f.memberships.projMemberships))
	}
}

func TestCreateMembership_NormalizesInvitationRoleCase(t *testing.T) {
	f := newCreateFixture()

	res, err := f.uc.Execute(context.Background(), CreateMembershipInput{
		OrgID: f.orgID,
		Email: "new@x.com",
		Role:  domain.Role("admin"),
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if res.Invitation.OrgRole != domain.RoleAdmin {
		t.Errorf("invitation role = %q, want %q", res.Invitation.OrgRole, domain.RoleAdmin)
	}
}

func TestCreateMembership_ForeignProjectIsNotFound(t *testing.T) {
	f := newCreateFixture()
	f.addUser("existing@x.com", "Ada")
	otherOrg := domain.NewOrganizationID(uuid.New())
	foreignID := domain.NewProjectID(uuid.New())
	f.projects.projects[foreignID.String()] = &domain.Project{ID: foreignID, OrganizationID: otherOrg}

	_, err := f.uc.Execute(context.Background(), CreateMembershipInput{
		OrgID:       f.orgID,
		Email:       "existing@x.com",
		Role:        domain.RoleMember,
		ProjectID:   &foreignID,
		ProjectRole: domain.RoleMember,
	})
	if !errors.Is(err, domerrors.ErrProjectNotFound) {
		t.Fatalf("err = %v, want ErrProjectNotFound", err)
	}
	if len(f.memberships.orgMemberships) != 0 {
		t.Error("no writes expected when the project fails to resolve")
	}
}

func TestCreateMembership_OrganizationNotFound(t *testing.T) {
	f := newCreateFixture()
	_, err := f.uc.Execute(context.Background(), CreateMembershipInput{
		OrgID: domain.NewOrganizationID(uuid.New()),
		Email: "new@x.com",
		Role:  domain.RoleMember,
	})
	if !errors.Is(err, domerrors.ErrOrganizationNotFound) {
		t.Fatalf("err = %v, want ErrOrganizationNotFound", err)
	}
	if len(f.invitations.invitations) != 0 || len(f.audit.records) != 0 || len(f.notifier.sent) != 0 {
		t.Error("no writes, audit entries, or notifications expected")
	}
}

func TestCreateMembership_Conflict_AlreadyMember(t *testing.T) {
	f := newCreateFixture()
	f.addUser("existing@x.com", "Ada")

	first, err := f.uc.Execute(context.Background(), CreateMembershipInput{
		OrgID: f.orgID, Email: "existing@x.com", Role: domain.RoleMember,
	})
	if err != nil {
		t.Fatalf("first Execute: %v", err)
	}

	_, err = f.uc.Execute(context.Background(), CreateMembershipInput{
		OrgID: f.orgID, Email: "existing@x.com", Role: domain.RoleOwner,
	})
	if !errors.Is(err, domerrors.ErrAlreadyMember) {
		t.Fatalf("second Execute err = %v, want ErrAlreadyMember", err)
	}
	// Role untouched by the losing call; no extra side effects.
	m := f.memberships.orgMemberships[orgMemberKey(f.orgID, first.Membership.UserID)]
	if m.Role != domain.RoleMember {
		t.Errorf("role after conflict = %q, want MEMBER", m.Role)
	}
	if len(f.audit.records) != 1 || len(f.notifier.sent) != 1 {
		t.Error("conflicting call must not audit or notify")
	}
}

func TestCreateMembership_Conflict_InvitationExists(t *testing.T) {
	f := newCreateFixture()

	if _, err := f.uc.Execute(context.Background(), CreateMembershipInput{
		OrgID: f.orgID, Email: "new@x.com", Role: domain.RoleMember,
	}); err != nil {
		t.Fatalf("first Execute: %v", err)
	}

	_, err := f.uc.Execute(context.Background(), CreateMembershipInput{
		OrgID: f.orgID, Email: "New@X.com", Role: domain.RoleMember,
	})
	if !errors.Is(err, domerrors.ErrInvitationExists) {
		t.Fatalf("second Execute err = %v, want ErrInvitationExists", err)
	}
	if len(f.invitations.invitations) != 1 {
		t.Errorf("invitation rows = %d, want 1", len(f.invitations.invitations))
	}
	if len(f.audit.records) != 1 || len(f.notifier.sent) != 1 {
		t.Error("conflicting call must not audit or notify")
	}
}

func TestCreateMembership_ValidationBeforeLookups(t *testing.T) {
	testCases := []struct {
		name  string
		email string
		role  domain.Role
	}{
		{"malformed email", "not-an-email", domain.RoleMember},
		{"unrecognized role", "new@x.com", domain.Role("SUPERUSER")},
		{"role NONE", "new@x.com", domain.RoleNone},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			f := newCreateFixture()
			// Any store access would panic the test via this error.
			f.orgs.err = errors.New("store must not be touched")

			_, err := f.uc.Execute(context.Background(), CreateMembershipInput{
				OrgID: f.orgID, Email: tc.email, Role: tc.role,
			})
			if !domerrors.IsValidation(err) {
				t.Fatalf("err = %v, want ValidationError", err)
			}
		})
	}
}

func TestCreateMembership_LostRaceSurfacesConflict(t *testing.T) {
	// Two concurrent requests both pass the pre-check; the store's unique
	// constraint breaks the tie and the repo reports the loser as Conflict.
	f := newCreateFixture()
	f.addUser("existing@x.com", "Ada")
	f.memberships.createErr = domerrors.ErrAlreadyMember

	_, err := f.uc.Execute(context.Background(), CreateMembershipInput{
		OrgID: f.orgID, Email: "existing@x.com", Role: domain.RoleMember,
	})
	if !errors.Is(err, domerrors.ErrAlreadyMember) {
		t.Fatalf("err = %v, want ErrAlreadyMember", err)
	}
	if len(f.notifier.sent) != 0 {
		t.Error("no notification for a write that did not happen")
	}
}

func TestCreateMembership_NotificationFailurePropagates(t *testing.T) {
	f := newCreateFixture()
	f.notifier.err = errors.New("smtp gateway down")

	_, err := f.uc.Execute(context.Background(), CreateMembershipInput{
		OrgID: f.orgID, Email: "new@x.com", Role: domain.RoleMember,
	})
	if err == nil || err.Error() != "smtp gateway down" {
		t.Fatalf("err = %v, want collaborator failure passed through", err)
	}
	// The invitation write and its audit entry land before the send fails.
	if len(f.invitations.invitations) != 1 || len(f.audit.records) != 1 {
		t.Error("write and audit precede the failed notification")
	}
}
