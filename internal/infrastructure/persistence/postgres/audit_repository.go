package postgres

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/memberd/memberd/internal/application/ports"
	"github.com/memberd/memberd/internal/infrastructure/persistence/db"
)

// AuditLogRepository appends rows to the append-only audit_log_entries
// table. Nothing in this service ever updates or deletes them.
type AuditLogRepository struct {
	q *db.Queries
}

func NewAuditLogRepository(q *db.Queries) *AuditLogRepository {
	return &AuditLogRepository{q: q}
}

func (r *AuditLogRepository) Create(ctx context.Context, rec ports.AuditRecord) error {
	afterState, err := json.Marshal(rec.AfterState)
	if err != nil {
		return err
	}
	return r.q.CreateAuditLogEntry(ctx, db.CreateAuditLogEntryParams{
		ID:           uuid.New(),
		ResourceType: rec.ResourceType,
		ResourceID:   rec.ResourceID,
		Action:       rec.Action,
		OrgID:        rec.OrgID.UUID,
		OrgRole:      rec.OrgRole.String(),
		ActorID:      rec.ActorID,
		AfterState:   afterState,
		CreatedAt:    time.Now(),
	})
}

// Ensure AuditLogRepository implements ports.AuditLogRepository.
var _ ports.AuditLogRepository = (*AuditLogRepository)(nil)
