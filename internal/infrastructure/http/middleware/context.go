package middleware

import "context"

type contextKey string

const actorContextKey contextKey = "actor"

// Actor is the authenticated caller placed in the request context.
type Actor struct {
	UserID string
	Email  string
	Name   string
}

// WithActor injects the actor into the context.
func WithActor(ctx context.Context, actor Actor) context.Context {
	return context.WithValue(ctx, actorContextKey, actor)
}

// ActorFromContext returns the actor from the context, or a zero Actor.
func ActorFromContext(ctx context.Context) Actor {
	v := ctx.Value(actorContextKey)
	if v == nil {
		return Actor{}
	}
	a, _ := v.(Actor)
	return a
}
