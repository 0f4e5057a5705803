package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestVisitorTTLFromEnv(t *testing.T) {
	t.Setenv("VISITOR_TTL_HOURS", "")
	require.Equal(t, DefaultVisitorTTL, visitorTTLFromEnv())

	t.Setenv("VISITOR_TTL_HOURS", "12")
	require.Equal(t, 12*time.Hour, visitorTTLFromEnv())

	t.Setenv("VISITOR_TTL_HOURS", "-3")
	require.Equal(t, DefaultVisitorTTL, visitorTTLFromEnv())
}
