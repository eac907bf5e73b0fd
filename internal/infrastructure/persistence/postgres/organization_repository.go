package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/memberd/memberd/internal/application/ports"
	"github.com/memberd/memberd/internal/domain"
	"github.com/memberd/memberd/internal/infrastructure/persistence/db"
)

type OrganizationRepository struct {
	q *db.Queries
}

func NewOrganizationRepository(q *db.Queries) *OrganizationRepository {
	return &OrganizationRepository{q: q}
}

func (r *OrganizationRepository) GetByID(ctx context.Context, orgID domain.OrganizationID) (*domain.Organization, error) {
	o, err := r.q.GetOrganizationByID(ctx, orgID.UUID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &domain.Organization{
		ID:        domain.NewOrganizationID(o.ID),
		Name:      o.Name,
		CreatedAt: o.CreatedAt,
	}, nil
}

// Ensure OrganizationRepository implements ports.OrganizationRepository.
var _ ports.OrganizationRepository = (*OrganizationRepository)(nil)
