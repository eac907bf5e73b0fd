package queue

import (
	"context"
	"encoding/json"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"

	"github.com/memberd/memberd/internal/application/ports"
)

// Worker runs Asynq task handlers (membership invitation email).
type Worker struct {
	srv *asynq.Server
	mux *asynq.ServeMux
	log zerolog.Logger
}

// NewWorker creates an Asynq server and registers handlers. Call Run() to start.
func NewWorker(redisOpt asynq.RedisClientOpt, log zerolog.Logger) *Worker {
	srv := asynq.NewServer(redisOpt, asynq.Config{
		Concurrency: 2,
		LogLevel:    asynq.InfoLevel,
	})
	mux := asynq.NewServeMux()
	w := &Worker{srv: srv, mux: mux, log: log}
	mux.HandleFunc(TypeSendMembershipInvite, w.handleSendMembershipInvite)
	return w
}

func (w *Worker) handleSendMembershipInvite(ctx context.Context, t *asynq.Task) error {
	var p ports.MembershipInvitationEmail
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		w.log.Error().Err(err).Msg("membership invite task payload invalid")
		return err
	}
	// Dev: log the email; production would send via SMTP/sendgrid etc.
	w.log.Info().
		Str("to", p.To).
		Str("org_id", p.OrgID).
		Str("org_name", p.OrgName).
		Str("inviter_email", p.InviterEmail).
		Bool("user_exists", p.UserExists).
		Str("environment", p.Environment).
		Msg("membership invite email (log only; configure SMTP for real email)")
	return nil
}

// Run blocks until shutdown. Use Shutdown for graceful stop.
func (w *Worker) Run() error {
	return w.srv.Run(w.mux)
}

// Shutdown stops the worker.
func (w *Worker) Shutdown() {
	w.srv.Shutdown()
}
