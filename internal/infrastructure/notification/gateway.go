// Package notification adapts the task queue into the NotificationGateway
// the orchestrator depends on.
package notification

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/memberd/memberd/internal/application/ports"
)

// QueueGateway enqueues invitation emails on the task queue. The enqueue
// itself is awaited, which keeps the audit-before-notification ordering,
// and an enqueue failure fails the whole operation.
type QueueGateway struct {
	enqueuer    ports.TaskEnqueuer
	environment string
}

// NewQueueGateway builds the gateway. environment is stamped into every
// payload so email templates can label non-production mail.
func NewQueueGateway(enqueuer ports.TaskEnqueuer, environment string) *QueueGateway {
	return &QueueGateway{enqueuer: enqueuer, environment: environment}
}

func (g *QueueGateway) SendMembershipInvitation(ctx context.Context, email ports.MembershipInvitationEmail) error {
	email.Environment = g.environment
	return g.enqueuer.EnqueueMembershipInvitationEmail(ctx, email)
}

// LogGateway logs the invitation instead of sending it. Used when Redis is
// not configured.
type LogGateway struct {
	log         zerolog.Logger
	environment string
}

func NewLogGateway(log zerolog.Logger, environment string) *LogGateway {
	return &LogGateway{log: log, environment: environment}
}

func (g *LogGateway) SendMembershipInvitation(ctx context.Context, email ports.MembershipInvitationEmail) error {
	g.log.Info().
		Str("to", email.To).
		Str("org_id", email.OrgID).
		Bool("user_exists", email.UserExists).
		Str("environment", g.environment).
		Msg("membership invite (log only; queue not configured)")
	return nil
}

var (
	_ ports.NotificationGateway = (*QueueGateway)(nil)
	_ ports.NotificationGateway = (*LogGateway)(nil)
)
