package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/memberd/memberd/internal/application/ports"
	"github.com/memberd/memberd/internal/domain"
	"github.com/memberd/memberd/internal/infrastructure/persistence/db"
)

type ProjectRepository struct {
	q *db.Queries
}

func NewProjectRepository(q *db.Queries) *ProjectRepository {
	return &ProjectRepository{q: q}
}

// GetByIDInOrg resolves a project scoped to an organization. The query
// itself excludes soft-deleted rows, so a deleted project is absent here.
func (r *ProjectRepository) GetByIDInOrg(ctx context.Context, projectID domain.ProjectID, orgID domain.OrganizationID) (*domain.Project, error) {
	p, err := r.q.GetProjectInOrganization(ctx, db.GetProjectInOrganizationParams{
		ID:             projectID.UUID,
		OrganizationID: orgID.UUID,
	})
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	var deletedAt *time.Time
	if p.DeletedAt.Valid {
		t := p.DeletedAt.Time
		deletedAt = &t
	}
	return &domain.Project{
		ID:             domain.NewProjectID(p.ID),
		OrganizationID: domain.NewOrganizationID(p.OrganizationID),
		Name:           p.Name,
		CreatedAt:      p.CreatedAt,
		DeletedAt:      deletedAt,
	}, nil
}

// Ensure ProjectRepository implements ports.ProjectRepository.
var _ ports.ProjectRepository = (*ProjectRepository)(nil)
