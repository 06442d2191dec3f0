package graphql

import (
	"context"
	"net/http"
)

type writerKey struct{}

// WithResponseWriter stashes the response writer so resolvers that manage
// the session cookie can reach it.
func WithResponseWriter(ctx context.Context, w http.ResponseWriter) context.Context {
	return context.WithValue(ctx, writerKey{}, w)
}

func responseWriterFrom(ctx context.Context) (http.ResponseWriter, bool) {
	w, ok := ctx.Value(writerKey{}).(http.ResponseWriter)
	return w, ok
}
