package instrument

import "context"

type correlationIDKey struct{}

// InvalidCorrelationID is returned when the context carries no
// correlation id, so log handlers can skip the attribute.
const InvalidCorrelationID = "[invalid_chain_id]"

// SetCorrelationID stores the request correlation id on the context.
func SetCorrelationID(ctx context.Context, cID string) context.Context {
	return context.WithValue(ctx, correlationIDKey{}, cID)
}

// GetCorrelationID returns the correlation id from the context, or
// InvalidCorrelationID when none was set.
func GetCorrelationID(ctx context.Context) string {
	if cID, ok := ctx.Value(correlationIDKey{}).(string); ok && cID != "" {
		return cID
	}

	return InvalidCorrelationID
}
