package ports

import (
	"context"

	"github.com/memberd/memberd/internal/domain"
)

// ActorAPI is the sentinel actor id stamped on audit entries written
// through this non-interactive workflow.
const ActorAPI = "api"

// Audit resource types and actions.
const (
	ResourceOrgMembership     = "organization_membership"
	ResourceProjectMembership = "project_membership"
	ResourceInvitation        = "membership_invitation"

	ActionCreate = "create"
)

// AuditRecord is one immutable entry describing a mutating action.
// AfterState is a post-mutation snapshot, serialized by the recorder.
type AuditRecord struct {
	ResourceType string
	ResourceID   string
	Action       string
	OrgID        domain.OrganizationID
	OrgRole      domain.Role
	ActorID      string
	AfterState   any
}

// AuditRecorder appends audit entries. Entries are never updated or
// deleted by this service.
type AuditRecorder interface {
	Record(ctx context.Context, rec AuditRecord) error
}

// AuditLogRepository is the durable store behind the recorder.
type AuditLogRepository interface {
	Create(ctx context.Context, rec AuditRecord) error
}
