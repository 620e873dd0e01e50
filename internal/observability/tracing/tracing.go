package tracing

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type traceIDKey struct{}

// StartCommand tags the context logger of a CLI command with the command
// name and a trace id. A trace id already on ctx is kept so that nested
// commands log under the same trace.
func StartCommand(ctx context.Context, command string) context.Context {
	id, ok := TraceID(ctx)
	if !ok {
		id = uuid.NewString()
		ctx = context.WithValue(ctx, traceIDKey{}, id)
	}

	logger := log.With().
		Str("traceId", id).
		Str("command", command).
		Logger()
	return logger.WithContext(ctx)
}

// TraceID returns the trace id set by StartCommand.
func TraceID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(traceIDKey{}).(string)
	return id, ok && id != ""
}
