package collection

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type item struct {
	ID    string
	Label string
}

func itemKey(i item) string { return i.ID }

func TestSet_AppendKeepsOrderAndUniqueness(t *testing.T) {
	s := NewSet(itemKey)

	require.True(t, s.Append(item{ID: "a"}))
	require.True(t, s.Append(item{ID: "b"}))
	require.False(t, s.Append(item{ID: "a", Label: "again"}))

	require.Equal(t, []item{{ID: "a"}, {ID: "b"}}, s.Items())
}

func TestSet_ReplaceKeepsPosition(t *testing.T) {
	s := NewSet(itemKey)
	s.Append(item{ID: "a"})
	s.Append(item{ID: "b"})
	s.Append(item{ID: "c"})

	require.True(t, s.Replace(item{ID: "b", Label: "updated"}))
	require.False(t, s.Replace(item{ID: "z"}))
	require.Equal(t, 1, s.Index("b"))
	got, ok := s.Get("b")
	require.True(t, ok)
	require.Equal(t, "updated", got.Label)
}

func TestSet_RemoveAbsentIsNoop(t *testing.T) {
	s := NewSet(itemKey)
	s.Append(item{ID: "a"})
	s.Append(item{ID: "b"})

	require.False(t, s.Remove("missing"))
	require.True(t, s.Remove("a"))
	require.Equal(t, []item{{ID: "b"}}, s.Items())
}

func TestSet_ItemsIsACopy(t *testing.T) {
	s := NewSet(itemKey)
	s.Append(item{ID: "a"})

	items := s.Items()
	items[0].Label = "mutated"

	got, _ := s.Get("a")
	require.Empty(t, got.Label)
}

func TestSet_ItemsNeverNil(t *testing.T) {
	s := NewSet(itemKey)
	require.NotNil(t, s.Items())
	s.Append(item{ID: "a"})
	s.Clear()
	require.NotNil(t, s.Items())
	require.Zero(t, s.Len())
}

func TestSet_ResetDropsDuplicatesAndEmptyKeys(t *testing.T) {
	s := NewSet(itemKey)

	skipped := s.Reset([]item{
		{ID: "a", Label: "first"},
		{ID: ""},
		{ID: "b"},
		{ID: "a", Label: "second"},
	})

	require.Equal(t, 2, skipped)
	require.Equal(t, []item{{ID: "a", Label: "first"}, {ID: "b"}}, s.Items())
}
