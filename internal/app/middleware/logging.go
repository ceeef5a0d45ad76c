package middleware

import (
	"context"
	"log/slog"
	"time"

	"bnb/internal/app/commands"
	"bnb/internal/app/queries"
)

// Logging records every command with its duration. Failures are logged at
// warn level and still returned unchanged.
func Logging(log *slog.Logger) CommandMiddleware {
	if log == nil {
		log = slog.Default()
	}
	return func(next commands.Bus) commands.Bus {
		nextFn := wrapCommand(next)
		return commandFunc(func(ctx context.Context, cmd commands.Command) (any, error) {
			start := time.Now()
			res, err := nextFn(ctx, cmd)
			logOutcome(ctx, log, "command", cmd.Key(), time.Since(start), err)
			return res, err
		})
	}
}

func QueryLogging(log *slog.Logger) QueryMiddleware {
	if log == nil {
		log = slog.Default()
	}
	return func(next queries.Bus) queries.Bus {
		nextFn := wrapQuery(next)
		return queryFunc(func(ctx context.Context, q queries.Query) (any, error) {
			start := time.Now()
			res, err := nextFn(ctx, q)
			logOutcome(ctx, log, "query", q.Key(), time.Since(start), err)
			return res, err
		})
	}
}

func logOutcome(ctx context.Context, log *slog.Logger, kind, key string, took time.Duration, err error) {
	if err != nil {
		log.WarnContext(ctx, kind+" failed", "key", key, "duration", took, "error", err)
		return
	}
	log.DebugContext(ctx, kind+" handled", "key", key, "duration", took)
}
