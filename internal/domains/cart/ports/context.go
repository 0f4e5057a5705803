package ports

import (
	"context"
	"errors"
)

// ErrOutsideProvider is returned when the cart is used from a context that
// no session provider has been attached to.
var ErrOutsideProvider = errors.New("cart service requested outside of a session provider")

type contextKey struct{}

// WithService attaches svc to ctx.
func WithService(ctx context.Context, svc Service) context.Context {
	return context.WithValue(ctx, contextKey{}, svc)
}

// FromContext returns the cart attached to ctx.
func FromContext(ctx context.Context) (Service, error) {
	if ctx != nil {
		if svc, ok := ctx.Value(contextKey{}).(Service); ok && svc != nil {
			return svc, nil
		}
	}
	return nil, ErrOutsideProvider
}

// MustFromContext is FromContext for wiring that is a programming error to get wrong.
func MustFromContext(ctx context.Context) Service {
	svc, err := FromContext(ctx)
	if err != nil {
		panic(err.Error() + ": attach one with session.Provider.Attach before using the cart")
	}
	return svc
}
