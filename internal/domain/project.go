package domain

import (
	"time"

	"github.com/google/uuid"
)

// ProjectID is a value object for project identity.
type ProjectID struct{ uuid.UUID }

// NewProjectID creates a new ProjectID from uuid.
func NewProjectID(id uuid.UUID) ProjectID { return ProjectID{UUID: id} }

// String returns the canonical string form.
func (p ProjectID) String() string { return p.UUID.String() }

// Project is a resource scope nested inside an organization. A non-nil
// DeletedAt marks a soft-deleted project, which must be treated as
// non-existent for membership purposes.
type Project struct {
	ID             ProjectID
	OrganizationID OrganizationID
	Name           string
	CreatedAt      time.Time
	DeletedAt      *time.Time
}
