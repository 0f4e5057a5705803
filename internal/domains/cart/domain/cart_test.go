package domain

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func product(id string, price, discount int64) Product {
	return Product{ID: id, Name: id, Price: decimal.NewFromInt(price), Discount: decimal.NewFromInt(discount)}
}

func TestCart_Totals(t *testing.T) {
	c := Cart{Entries: []Entry{
		{Product: product("p1", 100, 0), Quantity: 2},
		{Product: product("p2", 50, 50), Quantity: 1},
	}}

	require.Equal(t, 3, c.TotalItems())
	require.True(t, c.TotalPrice().Equal(decimal.NewFromInt(225)), c.TotalPrice().String())
}

func TestCart_EmptyTotals(t *testing.T) {
	var c Cart
	require.True(t, c.IsEmpty())
	require.Zero(t, c.TotalItems())
	require.True(t, c.TotalPrice().IsZero())
}

func TestProduct_UnitPriceKeepsCents(t *testing.T) {
	p := Product{ID: "p", Price: decimal.RequireFromString("19.99"), Discount: decimal.NewFromInt(15)}
	require.Equal(t, "16.9915", p.UnitPrice().String())
}

func TestNewEntry_Validation(t *testing.T) {
	_, err := NewEntry(Product{Price: decimal.NewFromInt(1)}, 1)
	require.ErrorIs(t, err, ErrMissingProductID)

	_, err = NewEntry(product("p", -1, 0), 1)
	require.ErrorIs(t, err, ErrInvalidPrice)

	_, err = NewEntry(product("p", 10, 101), 1)
	require.ErrorIs(t, err, ErrInvalidDiscount)

	_, err = NewEntry(product("p", 10, 0), 0)
	require.ErrorIs(t, err, ErrInvalidQuantity)

	_, err = NewEntry(product("p", 10, 0), MaxQuantity+1)
	require.ErrorIs(t, err, ErrQuantityLimit)

	e, err := NewEntry(product("p", 10, 0), 3)
	require.NoError(t, err)
	require.Equal(t, "p", EntryKey(e))
	require.True(t, e.LineTotal().Equal(decimal.NewFromInt(30)))
}

func TestCart_EntryLookup(t *testing.T) {
	c := Cart{Entries: []Entry{{Product: product("p1", 1, 0), Quantity: 1}}}

	e, ok := c.Entry("p1")
	require.True(t, ok)
	require.Equal(t, 1, e.Quantity)

	_, ok = c.Entry("missing")
	require.False(t, ok)
	require.False(t, Entry{Product: product("p", 1, 0)}.Valid())
}

func TestEntry_IncreaseStopsAtLimit(t *testing.T) {
	e, err := NewEntry(product("p", 1, 0), MaxQuantity-1)
	require.NoError(t, err)

	e, err = e.Increase(1)
	require.NoError(t, err)
	require.Equal(t, MaxQuantity, e.Quantity)

	_, err = e.Increase(1)
	require.ErrorIs(t, err, ErrQuantityLimit)

	_, err = e.Increase(math.MaxInt)
	require.ErrorIs(t, err, ErrQuantityLimit)

	_, err = e.Increase(0)
	require.ErrorIs(t, err, ErrInvalidQuantity)

	huge := Entry{Product: product("p", 1, 0), Quantity: math.MaxInt}
	require.False(t, huge.Valid())
}
