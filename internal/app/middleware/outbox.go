package middleware

import (
	"context"
	"fmt"

	"bnb/internal/app/commands"
	"bnb/internal/app/outbox"
)

// OutboxFlush gives each command its own record scope and publishes what the
// handler recorded once it returns without error. A failed command drops its
// records.
func OutboxFlush(box outbox.Outbox) CommandMiddleware {
	if box == nil {
		panic("middleware: outbox required")
	}
	return func(next commands.Bus) commands.Bus {
		nextFn := wrapCommand(next)
		return commandFunc(func(ctx context.Context, cmd commands.Command) (any, error) {
			ctx = outbox.WithScope(ctx)
			res, err := nextFn(ctx, cmd)
			if err != nil {
				_ = box.Discard(ctx)
				return nil, err
			}
			if err := box.Flush(ctx); err != nil {
				return nil, fmt.Errorf("flush outbox after %s: %w", cmd.Key(), err)
			}
			return res, nil
		})
	}
}
