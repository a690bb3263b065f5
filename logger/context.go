package logger

import (
	"context"
)

type dispatchIDKey struct{}

// ContextWithDispatchID returns a context carrying a dispatch id.
func ContextWithDispatchID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, dispatchIDKey{}, id)
}

// DispatchIDFromContext returns the dispatch id stored in ctx, if any.
func DispatchIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(dispatchIDKey{}).(string)
	return id
}
