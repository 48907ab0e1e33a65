package ports

import "context"

type contextKey string

const ContextKeyInvocationID contextKey = "invocation_id"

// WithInvocationID кладёт id вызова в контекст
func WithInvocationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ContextKeyInvocationID, id)
}

// InvocationIDFromContext достаёт id вызова, пустая строка если его нет
func InvocationIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(ContextKeyInvocationID).(string); ok {
		return id
	}
	return ""
}
