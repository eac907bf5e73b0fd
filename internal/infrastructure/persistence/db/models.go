package db

import (
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type Organization struct {
	ID        uuid.UUID
	Name      string
	CreatedAt time.Time
}

type Project struct {
	ID             uuid.UUID
	OrganizationID uuid.UUID
	Name           string
	CreatedAt      time.Time
	DeletedAt      pgtype.Timestamptz
}

type User struct {
	ID        uuid.UUID
	Email     string
	Name      string
	CreatedAt time.Time
}

type OrganizationMembership struct {
	ID             uuid.UUID
	OrganizationID uuid.UUID
	UserID         uuid.UUID
	Role           string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type ProjectMembership struct {
	ID                       uuid.UUID
	ProjectID                uuid.UUID
	UserID                   uuid.UUID
	Role                     string
	OrganizationMembershipID uuid.UUID
	CreatedAt                time.Time
}

type MembershipInvitation struct {
	ID             uuid.UUID
	OrganizationID uuid.UUID
	Email          string
	OrgRole        string
	ProjectID      pgtype.UUID
	ProjectRole    pgtype.Text
	Status         string
	CreatedAt      time.Time
}

type AuditLogEntry struct {
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
