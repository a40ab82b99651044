package logging

import (
	"context"

	"github.com/google/uuid"
)

// Context keys for common log fields.
type contextKey string

const (
	// InvocationIDKey is the context key for per-invocation IDs.
	InvocationIDKey contextKey = "invocation_id"

	// CommandKey is the context key for the running command name.
	CommandKey contextKey = "command"
)

// WithInvocationID adds a generated invocation ID to the context and
// returns the new context along with the ID.
func WithInvocationID(ctx context.Context) (context.Context, string) {
	id := uuid.New().String()
	return context.WithValue(ctx, InvocationIDKey, id), id
}

// GetInvocationID retrieves the invocation ID from the context.
func GetInvocationID(ctx context.Context) string {
	if id, ok := ctx.Value(InvocationIDKey).(string); ok {
		return id
	}
	return ""
}

// WithCommand adds the running command name to the context.
func WithCommand(ctx context.Context, command string) context.Context {
	return context.WithValue(ctx, CommandKey, command)
}

// GetCommand retrieves the command name from the context.
func GetCommand(ctx context.Context) string {
	if command, ok := ctx.Value(CommandKey).(string); ok {
		return command
	}
	return ""
}

// ContextFields extracts common fields from context for logging.
// Returns a slice of key-value pairs suitable for Logger.With().
func ContextFields(ctx context.Context) []any {
	var fields []any

	if id := GetInvocationID(ctx); id != "" {
		fields = append(fields, "invocation_id", id)
	}
	if command := GetCommand(ctx); command != "" {
		fields = append(fields, "command", command)
	}
	return fields
}
