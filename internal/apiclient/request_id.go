package apiclient

import "context"

// RequestIDHeader correlates frontend and backend logs
const RequestIDHeader = "X-Request-Id"

type requestIDKey struct{}

// ContextWithRequestID attaches a request id that Request forwards to the backend
func ContextWithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}
