package auditlog

import (
	"context"

	"github.com/google/uuid"
)

// Actor identifies who performed a request.
type Actor struct {
	ID        uuid.UUID
	Name      string
	IP        string
	UserAgent string
}

type actorKey struct{}

// WithActor returns a copy of ctx carrying the actor
func WithActor(ctx context.Context, actor Actor) context.Context {
	return context.WithValue(ctx, actorKey{}, actor)
}

// ActorFromContext returns the actor stored by WithActor
func ActorFromContext(ctx context.Context) (Actor, bool) {
	actor, ok := ctx.Value(actorKey{}).(Actor)
	return actor, ok
}
