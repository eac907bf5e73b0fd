package db

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const getOrganizationByID = `
SELECT id, name, created_at FROM organizations WHERE id = $1
`

func (q *Queries) GetOrganizationByID(ctx context.Context, id uuid.UUID) (Organization, error) {
	row := q.db.QueryRow(ctx, getOrganizationByID, id)
	var o Organization
	err := row.Scan(&o.ID, &o.Name, &o.CreatedAt)
	return o, err
}

const getProjectInOrganization = `
SELECT id, organization_id, name, created_at, deleted_at
FROM projects
WHERE id = $1 AND organization_id = $2 AND deleted_at IS NULL
`

type GetProjectInOrganizationParams struct {
	ID             uuid.UUID
	OrganizationID uuid.UUID
}

func (q *Queries) GetProjectInOrganization(ctx context.Context, arg GetProjectInOrganizationParams) (Project, error) {
	row := q.db.QueryRow(ctx, getProjectInOrganization, arg.ID, arg.OrganizationID)
	var p Project
	err := row.Scan(&p.ID, &p.OrganizationID, &p.Name, &p.CreatedAt, &p.DeletedAt)
	return p, err
}

const getUserByEmail = `
SELECT id, email, name, created_at FROM users WHERE lower(email) = lower($1)
`

func (q *Queries) GetUserByEmail(ctx context.Context, email string) (User, error) {
	row := q.db.QueryRow(ctx, getUserByEmail, email)
	var u User
	err := row.Scan(&u.ID, &u.Email, &u.Name, &u.CreatedAt)
	return u, err
}

const getUserByID = `
SELECT id, email, name, created_at FROM users WHERE id = $1
`

func (q *Queries) GetUserByID(ctx context.Context, id uuid.UUID) (User, error) {
	row := q.db.QueryRow(ctx, getUserByID, id)
	var u User
	err := row.Scan(&u.ID, &u.Email, &u.Name, &u.CreatedAt)
	return u, err
}

const getOrganizationMembership = `
SELECT id, organization_id, user_id, role, created_at, updated_at
FROM organization_memberships
WHERE organization_id = $1 AND user_id = $2
`

type GetOrganizationMembershipParams struct {
	OrganizationID uuid.UUID
	UserID         uuid.UUID
}

func (q *Queries) GetOrganizationMembership(ctx context.Context, arg GetOrganizationMembershipParams) (OrganizationMembership, error) {
	row := q.db.QueryRow(ctx, getOrganizationMembership, arg.OrganizationID, arg.UserID)
	var m OrganizationMembership
	err := row.Scan(&m.ID, &m.OrganizationID, &m.UserID, &m.Role, &m.CreatedAt, &m.UpdatedAt)
	return m, err
}

const createOrganizationMembership = `
INSERT INTO organization_memberships (id, organization_id, user_id, role, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id, organization_id, user_id, role, created_at, updated_at
`

type CreateOrganizationMembershipParams struct {
	ID             uuid.UUID
	OrganizationID uuid.UUID
	UserID         uuid.UUID
	Role           string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (q *Queries) CreateOrganizationMembership(ctx context.Context, arg CreateOrganizationMembershipParams) (OrganizationMembership, error) {
	row := q.db.QueryRow(ctx, createOrganizationMembership,
		arg.ID, arg.OrganizationID, arg.UserID, arg.Role, arg.CreatedAt, arg.UpdatedAt)
	var m OrganizationMembership
	err := row.Scan(&m.ID, &m.OrganizationID, &m.UserID, &m.Role, &m.CreatedAt, &m.UpdatedAt)
	return m, err
}

const upsertOrganizationMembership = `
INSERT INTO organization_memberships (id, organization_id, user_id, role, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (organization_id, user_id)
DO UPDATE SET role = EXCLUDED.role, updated_at = EXCLUDED.updated_at
RETURNING id, organization_id, user_id, role, created_at, updated_at
`

type UpsertOrganizationMembershipParams struct {
	ID             uuid.UUID
	OrganizationID uuid.UUID
	UserID         uuid.UUID
	Role           string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (q *Queries) UpsertOrganizationMembership(ctx context.Context, arg UpsertOrganizationMembershipParams) (OrganizationMembership, error) {
	row := q.db.QueryRow(ctx, upsertOrganizationMembership,
		arg.ID, arg.OrganizationID, arg.UserID, arg.Role, arg.CreatedAt, arg.UpdatedAt)
	var m OrganizationMembership
	err := row.Scan(&m.ID, &m.OrganizationID, &m.UserID, &m.Role, &m.CreatedAt, &m.UpdatedAt)
	return m, err
}

const deleteOrganizationMemberships = `
DELETE FROM organization_memberships WHERE organization_id = $1 AND user_id = $2
`

type DeleteOrganizationMembershipsParams struct {
	OrganizationID uuid.UUID
	UserID         uuid.UUID
}

func (q *Queries) DeleteOrganizationMemberships(ctx context.Context, arg DeleteOrganizationMembershipsParams) error {
	_, err := q.db.Exec(ctx, deleteOrganizationMemberships, arg.OrganizationID, arg.UserID)
	return err
}

const createProjectMembership = `
INSERT INTO project_memberships (id, project_id, user_id, role, organization_membership_id, created_at)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id, project_id, user_id, role, organization_membership_id, created_at
`

type CreateProjectMembershipParams struct {
	ID                       uuid.UUID
	ProjectID                uuid.UUID
	UserID                   uuid.UUID
	Role                     string
	OrganizationMembershipID uuid.UUID
	CreatedAt                time.Time
}

func (q *Queries) CreateProjectMembership(ctx context.Context, arg CreateProjectMembershipParams) (ProjectMembership, error) {
	row := q.db.QueryRow(ctx, createProjectMembership,
		arg.ID, arg.ProjectID, arg.UserID, arg.Role, arg.OrganizationMembershipID, arg.CreatedAt)
	var m ProjectMembership
	err := row.Scan(&m.ID, &m.ProjectID, &m.UserID, &m.Role, &m.OrganizationMembershipID, &m.CreatedAt)
	return m, err
}

const getPendingInvitation = `
SELECT id, organization_id, email, org_role, project_id, project_role, status, created_at
FROM membership_invitations
WHERE organization_id = $1 AND lower(email) = lower($2) AND status = 'PENDING'
`

type GetPendingInvitationParams struct {
	OrganizationID uuid.UUID
	Email          string
}

func (q *Queries) GetPendingInvitation(ctx context.Context, arg GetPendingInvitationParams) (MembershipInvitation, error) {
	row := q.db.QueryRow(ctx, getPendingInvitation, arg.OrganizationID, arg.Email)
	var i MembershipInvitation
	err := row.Scan(&i.ID, &i.OrganizationID, &i.Email, &i.OrgRole, &i.ProjectID, &i.ProjectRole, &i.Status, &i.CreatedAt)
	return i, err
}

const createMembershipInvitation = `
INSERT INTO membership_invitations (id, organization_id, email, org_role, project_id, project_role, status, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING id, organization_id, email, org_role, project_id, project_role, status, created_at
`

type CreateMembershipInvitationParams struct {
	ID             uuid.UUID
	OrganizationID uuid.UUID
	Email          string
	OrgRole        string
	ProjectID      pgtype.UUID
	ProjectRole    pgtype.Text
	Status         string
	CreatedAt      time.Time
}

func (q *Queries) CreateMembershipInvitation(ctx context.Context, arg CreateMembershipInvitationParams) (MembershipInvitation, error) {
	row := q.db.QueryRow(ctx, createMembershipInvitation,
		arg.ID, arg.OrganizationID, arg.Email, arg.OrgRole, arg.ProjectID, arg.ProjectRole, arg.Status, arg.CreatedAt)
	var i MembershipInvitation
	err := row.Scan(&i.ID, &i.OrganizationID, &i.Email, &i.OrgRole, &i.ProjectID, &i.ProjectRole, &i.Status, &i.CreatedAt)
	return i, err
}

const listPendingInvitations = `
SELECT id, organization_id, email, org_role, project_id, project_role, status, created_at
FROM membership_invitations
WHERE organization_id = $1 AND status = 'PENDING'
`

func (q *Queries) ListPendingInvitations(ctx context.Context, organizationID uuid.UUID) ([]MembershipInvitation, error) {
	rows, err := q.db.Query(ctx, listPendingInvitations, organizationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []MembershipInvitation
	for rows.Next() {
		var i MembershipInvitation
		if err := rows.Scan(&i.ID, &i.OrganizationID, &i.Email, &i.OrgRole, &i.ProjectID, &i.ProjectRole, &i.Status, &i.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

const listOrganizationMemberships = `
SELECT m.id, m.organization_id, m.user_id, m.role, m.created_at, m.updated_at,
       u.id, u.email, u.name, u.created_at
FROM organization_memberships m
JOIN users u ON u.id = m.user_id
WHERE m.organization_id = $1
`

type ListOrganizationMembershipsRow struct {
	Membership OrganizationMembership
	User       User
}

func (q *Queries) ListOrganizationMemberships(ctx context.Context, organizationID uuid.UUID) ([]ListOrganizationMembershipsRow, error) {
	rows, err := q.db.Query(ctx, listOrganizationMemberships, organizationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []ListOrganizationMembershipsRow
	for rows.Next() {
		var r ListOrganizationMembershipsRow
		if err := rows.Scan(
			&r.Membership.ID, &r.Membership.OrganizationID, &r.Membership.UserID,
			&r.Membership.Role, &r.Membership.CreatedAt, &r.Membership.UpdatedAt,
			&r.User.ID, &r.User.Email, &r.User.Name, &r.User.CreatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, r)
	}
	return items, rows.Err()
}

const createAuditLogEntry = `
INSERT INTO audit_log_entries (id, resource_type, resource_id, action, org_id, org_role, actor_id, after_state, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
`

type CreateAuditLogEntryParams struct {
	ID           uuid.UUID
	ResourceType string
	ResourceID   string
	Action       string
	OrgID        uuid.UUID
	OrgRole      string
	ActorID      string
	AfterState   []byte
	CreatedAt    time.Time
}

func (q *Queries) CreateAuditLogEntry(ctx context.Context, arg CreateAuditLogEntryParams) error {
	_, err := q.db.Exec(ctx, createAuditLogEntry,
		arg.ID, arg.ResourceType, arg.ResourceID, arg.Action, arg.OrgID, arg.OrgRole, arg.ActorID, arg.AfterState, arg.CreatedAt)
	return err
}
