package postgres

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestConnectRejectsEmptyDSN(t *testing.T) {
	db, err := Connect(context.Background(), "  ", DefaultPool)

	require.Error(t, err)
	require.Nil(t, db)
}

func TestConnectOrWarnFallsBackWithoutDSN(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	db, cleanup := ConnectOrWarn(context.Background(), "", logger)
	cleanup()

	require.Nil(t, db)
	require.Contains(t, buf.String(), "POSTGRES_DSN not set")
}
