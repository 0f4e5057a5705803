package panel

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPanel_StartsClosed(t *testing.T) {
	var p Panel
	require.False(t, p.IsOpen())
	require.Equal(t, Closed, p.State())
}

func TestPanel_ToggleFlips(t *testing.T) {
	var p Panel
	require.Equal(t, Open, p.Toggle())
	require.True(t, p.IsOpen())
	require.Equal(t, Closed, p.Toggle())
	require.False(t, p.IsOpen())
}

func TestPanel_CloseForcesClosed(t *testing.T) {
	var p Panel
	require.False(t, p.Close())

	p.Toggle()
	require.True(t, p.Close())
	require.Equal(t, Closed, p.State())
	require.False(t, p.Close())
}
