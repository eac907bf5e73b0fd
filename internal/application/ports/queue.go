package ports

import "context"

// TaskEnqueuer enqueues async tasks (email delivery).
type TaskEnqueuer interface {
	EnqueueMembershipInvitationEmail(ctx context.Context, email MembershipInvitationEmail) error
}
