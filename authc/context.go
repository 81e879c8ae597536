package authc

import "context"

type operationIDContextKey struct{}

// WithOperationID returns a copy of the context which carries the operation id.
func WithOperationID(ctx context.Context, operationID string) context.Context {
	return context.WithValue(ctx, operationIDContextKey{}, operationID)
}

// OperationIDFromContext gets the operation id from the context.
func OperationIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}

	operationID, _ := ctx.Value(operationIDContextKey{}).(string)

	return operationID
}
