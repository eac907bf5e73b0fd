package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/memberd/memberd/internal/application/ports"
	"github.com/memberd/memberd/internal/domain"
	domerrors "github.com/memberd/memberd/internal/domain/errors"
	"github.com/memberd/memberd/internal/infrastructure/persistence/db"
)

type InvitationRepository struct {
	q *db.Queries
}

func NewInvitationRepository(q *db.Queries) *InvitationRepository {
	return &InvitationRepository{q: q}
}

func (r *InvitationRepository) GetPending(ctx context.Context, orgID domain.OrganizationID, email string) (*domain.MembershipInvitation, error) {
	i, err := r.q.GetPendingInvitation(ctx, db.GetPendingInvitationParams{
		OrganizationID: orgID.UUID,
		Email:          email,
	})
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	out := dbInvitationToDomain(i)
	return &out, nil
}

// Create inserts the invitation. The partial unique index on
// (organization_id, lower(email)) WHERE status = 'PENDING' breaks
// concurrent creates; its violation comes back as ErrInvitationExists.
func (r *InvitationRepository) Create(ctx context.Context, inv *domain.MembershipInvitation) error {
	var projectID pgtype.UUID
	var projectRole pgtype.Text
	if inv.ProjectID != nil {
		projectID = pgtype.UUID{Bytes: inv.ProjectID.UUID, Valid: true}
		projectRole = pgtype.Text{String: inv.ProjectRole.String(), Valid: true}
	}
	created, err := r.q.CreateMembershipInvitation(ctx, db.CreateMembershipInvitationParams{
		ID:             inv.ID.UUID,
		OrganizationID: inv.OrganizationID.UUID,
		Email:          inv.Email,
		OrgRole:        inv.OrgRole.String(),
		ProjectID:      projectID,
		ProjectRole:    projectRole,
		Status:         string(inv.Status),
		CreatedAt:      inv.CreatedAt,
	})
	if err != nil {
		if isUniqueViolation(err) {
			return domerrors.ErrInvitationExists
		}
		return err
	}
	*inv = dbInvitationToDomain(created)
	return nil
}

func (r *InvitationRepository) ListPending(ctx context.Context, orgID domain.OrganizationID) ([]*domain.MembershipInvitation, error) {
	rows, err := r.q.ListPendingInvitations(ctx, orgID.UUID)
	if err != nil {
		return nil, err
	}
	out := make([]*domain.MembershipInvitation, 0, len(rows))
	for _, row := range rows {
		inv := dbInvitationToDomain(row)
		out = append(out, &inv)
	}
	return out, nil
}

func dbInvitationToDomain(i db.MembershipInvitation) domain.MembershipInvitation {
	inv := domain.MembershipInvitation{
		ID:             domain.NewInvitationID(i.ID),
		OrganizationID: domain.NewOrganizationID(i.OrganizationID),
		Email:          i.Email,
		OrgRole:        domain.Role(i.OrgRole),
		ProjectRole:    domain.RoleNone,
		Status:         domain.InvitationStatus(i.Status),
		CreatedAt:      i.CreatedAt,
	}
	if i.ProjectID.Valid {
		pid := domain.NewProjectID(i.ProjectID.Bytes)
		inv.ProjectID = &pid
	}
	if i.ProjectRole.Valid {
		inv.ProjectRole = domain.Role(i.ProjectRole.String)
	}
	return inv
}

// Ensure InvitationRepository implements ports.InvitationRepository.
var _ ports.InvitationRepository = (*InvitationRepository)(nil)
