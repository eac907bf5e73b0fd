package ports

import "context"

// MembershipInvitationEmail is the payload for an invitation notification.
// UserExists distinguishes "you were added" from "you were invited" copy.
type MembershipInvitationEmail struct {
	InviterEmail string `json:"inviter_email"`
	InviterName  string `json:"inviter_name"`
	To           string `json:"to"`
	OrgName      string `json:"org_name"`
	OrgID        string `json:"org_id"`
	UserExists   bool   `json:"user_exists"`
	Environment  string `json:"environment"`
}

// NotificationGateway sends membership emails. The orchestrator awaits the
// call for ordering but never retries; failures propagate unchanged.
type NotificationGateway interface {
	SendMembershipInvitation(ctx context.Context, email MembershipInvitationEmail) error
}
