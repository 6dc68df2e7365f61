package httpapi

import "context"

type contextKey string

const visitorIDContextKey contextKey = "visitor_id"

func withVisitorID(ctx context.Context, visitorID string) context.Context {
	return context.WithValue(ctx, visitorIDContextKey, visitorID)
}

func visitorIDFromContext(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(visitorIDContextKey).(string)
	return v, ok && v != ""
}
