package requestid

import (
	"context"
	"log/slog"
)

type ctxKey struct{}

// Header is the HTTP header that carries the request ID in both directions.
const Header = "X-Request-ID"

// NewContext returns a context that carries the given request ID.
func NewContext(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// FromContext returns the request ID stored in ctx, or an empty string.
func FromContext(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}

// Attr returns the request ID of ctx as a log attribute.
func Attr(ctx context.Context) slog.Attr {
	return slog.String("request_id", FromContext(ctx))
}
