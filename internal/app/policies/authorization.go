package policies

import (
	"context"
	"errors"
)

var ErrForbidden = errors.New("policies: operation requires an administrator")

// AdminOnly is implemented by messages that only an administrator may send.
type AdminOnly interface {
	AdminOnly()
}

type adminKey struct{}

// WithAdmin marks ctx as acting on behalf of the named administrator.
func WithAdmin(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, adminKey{}, name)
}

func AdminFromContext(ctx context.Context) (string, bool) {
	name, ok := ctx.Value(adminKey{}).(string)
	return name, ok && name != ""
}

// AdminAuthorizer lets every message through except AdminOnly ones sent
// without an administrator on the context.
type AdminAuthorizer struct{}

func (AdminAuthorizer) Authorize(ctx context.Context, message any) error {
	if _, restricted := message.(AdminOnly); !restricted {
		return nil
	}
	if _, ok := AdminFromContext(ctx); !ok {
		return ErrForbidden
	}
	return nil
}
