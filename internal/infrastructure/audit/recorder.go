// Package audit implements the AuditRecorder over the durable store, with
// a structured-log mirror of every entry.
package audit

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/memberd/memberd/internal/application/ports"
)

type Recorder struct {
	store ports.AuditLogRepository
	log   zerolog.Logger
}

func NewRecorder(store ports.AuditLogRepository, log zerolog.Logger) *Recorder {
	return &Recorder{store: store, log: log}
}

// Record appends the entry. The durable write comes first; the log line is
// a mirror, not the source of truth.
func (r *Recorder) Record(ctx context.Context, rec ports.AuditRecord) error {
	if err := r.store.Create(ctx, rec); err != nil {
		return err
	}
	r.log.Info().
		Str("resource_type", rec.ResourceType).
		Str("resource_id", rec.ResourceID).
		Str("action", rec.Action).
		Str("org_id", rec.OrgID.String()).
		Str("org_role", rec.OrgRole.String()).
		Str("actor_id", rec.ActorID).
		Msg("audit")
	return nil
}

var _ ports.AuditRecorder = (*Recorder)(nil)
