package ports

import (
	"context"
	"errors"
)

// ErrOutsideProvider is returned when favorites are used from a context that
// no session provider has been attached to.
var ErrOutsideProvider = errors.New("favorites service requested outside of a session provider")

type contextKey struct{}

func WithService(ctx context.Context, svc Service) context.Context {
	return context.WithValue(ctx, contextKey{}, svc)
}

func FromContext(ctx context.Context) (Service, error) {
	if ctx != nil {
		if svc, ok := ctx.Value(contextKey{}).(Service); ok && svc != nil {
			return svc, nil
		}
	}
	return nil, ErrOutsideProvider
}

func MustFromContext(ctx context.Context) Service {
	svc, err := FromContext(ctx)
	if err != nil {
		panic(err.Error() + ": attach one with session.Provider.Attach before using favorites")
	}
	return svc
}
