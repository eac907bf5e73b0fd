package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/memberd/memberd/internal/application/ports"
	"github.com/memberd/memberd/internal/domain"
	domerrors "github.com/memberd/memberd/internal/domain/errors"
	"github.com/memberd/memberd/internal/infrastructure/persistence/db"
)

type MembershipRepository struct {
	q *db.Queries
}

func NewMembershipRepository(q *db.Queries) *MembershipRepository {
	return &MembershipRepository{q: q}
}

func (r *MembershipRepository) GetOrgMembership(ctx context.Context, orgID domain.OrganizationID, userID domain.UserID) (*domain.OrganizationMembership, error) {
	m, err := r.q.GetOrganizationMembership(ctx, db.GetOrganizationMembershipParams{
		OrganizationID: orgID.UUID,
		UserID:         userID.UUID,
	})
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	out := dbOrgMembershipToDomain(m)
	return &out, nil
}

// CreateOrgMembership inserts the row. The unique index on
// (organization_id, user_id) is the final arbiter for concurrent creates;
// its violation comes back as ErrAlreadyMember.
func (r *MembershipRepository) CreateOrgMembership(ctx context.Context, m *domain.OrganizationMembership) error {
	created, err := r.q.CreateOrganizationMembership(ctx, db.CreateOrganizationMembershipParams{
		ID:             m.ID.UUID,
		OrganizationID: m.OrganizationID.UUID,
		UserID:         m.UserID.UUID,
		Role:           m.Role.String(),
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	})
	if err != nil {
		if isUniqueViolation(err) {
			return domerrors.ErrAlreadyMember
		}
		return err
	}
	*m = dbOrgMembershipToDomain(created)
	return nil
}

func (r *MembershipRepository) UpsertOrgMembership(ctx context.Context, m *domain.OrganizationMembership) error {
	upserted, err := r.q.UpsertOrganizationMembership(ctx, db.UpsertOrganizationMembershipParams{
		ID:             m.ID.UUID,
		OrganizationID: m.OrganizationID.UUID,
		UserID:         m.UserID.UUID,
		Role:           m.Role.String(),
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	})
	if err != nil {
		return err
	}
	*m = dbOrgMembershipToDomain(upserted)
	return nil
}

func (r *MembershipRepository) DeleteOrgMemberships(ctx context.Context, orgID domain.OrganizationID, userID domain.UserID) error {
	return r.q.DeleteOrganizationMemberships(ctx, db.DeleteOrganizationMembershipsParams{
		OrganizationID: orgID.UUID,
		UserID:         userID.UUID,
	})
}

func (r *MembershipRepository) CreateProjectMembership(ctx context.Context, m *domain.ProjectMembership) error {
	created, err := r.q.CreateProjectMembership(ctx, db.CreateProjectMembershipParams{
		ID:                       m.ID.UUID,
		ProjectID:                m.ProjectID.UUID,
		UserID:                   m.UserID.UUID,
		Role:                     m.Role.String(),
		OrganizationMembershipID: m.OrganizationMembershipID.UUID,
		CreatedAt:                m.CreatedAt,
	})
	if err != nil {
		if isUniqueViolation(err) {
			return domerrors.ErrAlreadyMember
		}
		return err
	}
	m.CreatedAt = created.CreatedAt
	return nil
}

func (r *MembershipRepository) ListOrgMemberships(ctx context.Context, orgID domain.OrganizationID) ([]*domain.MemberWithUser, error) {
	rows, err := r.q.ListOrganizationMemberships(ctx, orgID.UUID)
	if err != nil {
		return nil, err
	}
	out := make([]*domain.MemberWithUser, 0, len(rows))
	for _, row := range rows {
		out = append(out, &domain.MemberWithUser{
			Membership: dbOrgMembershipToDomain(row.Membership),
			User: domain.User{
				ID:        domain.NewUserID(row.User.ID),
				Email:     row.User.Email,
				Name:      row.User.Name,
				CreatedAt: row.User.CreatedAt,
			},
		})
	}
	return out, nil
}

func dbOrgMembershipToDomain(m db.OrganizationMembership) domain.OrganizationMembership {
	return domain.OrganizationMembership{
		ID:             domain.NewMembershipID(m.ID),
		OrganizationID: domain.NewOrganizationID(m.OrganizationID),
		UserID:         domain.NewUserID(m.UserID),
		Role:           domain.Role(m.Role),
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

// Ensure MembershipRepository implements ports.MembershipRepository.
var _ ports.MembershipRepository = (*MembershipRepository)(nil)
