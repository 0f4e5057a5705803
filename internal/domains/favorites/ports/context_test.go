package ports

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

type stubService struct{ Service }

func TestFromContext(t *testing.T) {
	_, err := FromContext(context.Background())
	require.ErrorIs(t, err, ErrOutsideProvider)
	require.Panics(t, func() { MustFromContext(context.Background()) })

	svc := &stubService{}
	got, err := FromContext(WithService(context.Background(), svc))
	require.NoError(t, err)
	require.Same(t, svc, got.(*stubService))
}
