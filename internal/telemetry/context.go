package telemetry

import "context"

// queryIDKey is the context key type used to store a query ID.
type queryIDKey struct{}

// WithQueryID returns a child context that carries the provided query ID.
// If ctx is nil, context.Background() is used.
func WithQueryID(ctx context.Context, id string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, queryIDKey{}, id)
}

// QueryIDFromContext returns the query ID from ctx, if present.
// Returns "", false if the value is missing or not a non-empty string.
func QueryIDFromContext(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	s, ok := ctx.Value(queryIDKey{}).(string)
	if !ok || s == "" {
		return "", false
	}
	return s, true
}
