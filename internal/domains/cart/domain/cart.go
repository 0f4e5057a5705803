package domain

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

// StorageKey is the durable key of the cart. Changing it orphans saved carts.
const StorageKey = "cart"

// MaxQuantity bounds a single cart line.
const MaxQuantity = 999

var hundred = decimal.NewFromInt(100)

var (
	ErrMissingProductID = errors.New("product id is required")
	ErrInvalidQuantity  = errors.New("quantity must be at least one")
	ErrQuantityLimit    = errors.New("quantity exceeds the per-line limit")
	ErrInvalidPrice     = errors.New("price must be greater or equal to zero")
	ErrInvalidDiscount  = errors.New("discount must be between 0 and 100 percent")
)

// Product is the catalog snapshot captured when the item was added. It is
// never refreshed afterwards.
type Product struct {
	ID          string
	Name        string
	Description string
	Category    string
	ImageURL    string
	Price       decimal.Decimal
	// Discount is a percentage in [0, 100].
	Discount decimal.Decimal
}

// Validate checks the snapshot carries what the cart needs to price it.
func (p Product) Validate() error {
	if strings.TrimSpace(p.ID) == "" {
		return ErrMissingProductID
	}
	if p.Price.IsNegative() {
		return ErrInvalidPrice
	}
	if p.Discount.IsNegative() || p.Discount.GreaterThan(hundred) {
		return ErrInvalidDiscount
	}
	return nil
}

// UnitPrice applies the discount to the list price.
func (p Product) UnitPrice() decimal.Decimal {
	return p.Price.Mul(hundred.Sub(p.Discount)).Div(hundred)
}

// Entry is one cart line.
type Entry struct {
	Product  Product
	Quantity int
}

// NewEntry validates product and quantity.
func NewEntry(product Product, quantity int) (Entry, error) {
	if err := product.Validate(); err != nil {
		return Entry{}, err
	}
	if err := checkQuantity(quantity); err != nil {
		return Entry{}, err
	}
	return Entry{Product: product, Quantity: quantity}, nil
}

func checkQuantity(quantity int) error {
	switch {
	case quantity < 1:
		return ErrInvalidQuantity
	case quantity > MaxQuantity:
		return ErrQuantityLimit
	}
	return nil
}

func (e Entry) ID() string { return e.Product.ID }

func (e Entry) Validate() error {
	if err := e.Product.Validate(); err != nil {
		return err
	}
	return checkQuantity(e.Quantity)
}

// Valid is Validate as a predicate, for filtering hydrated entries.
func (e Entry) Valid() bool { return e.Validate() == nil }

// Increase returns a copy with n more units. The sum is checked against
// MaxQuantity before it is computed, so it cannot wrap.
func (e Entry) Increase(n int) (Entry, error) {
	if n < 1 {
		return Entry{}, ErrInvalidQuantity
	}
	if e.Quantity > MaxQuantity-n {
		return Entry{}, ErrQuantityLimit
	}
	e.Quantity += n
	return e, nil
}

// WithQuantity returns a copy holding quantity.
func (e Entry) WithQuantity(quantity int) Entry {
	e.Quantity = quantity
	return e
}

func (e Entry) LineTotal() decimal.Decimal {
	return e.Product.UnitPrice().Mul(decimal.NewFromInt(int64(e.Quantity)))
}

// EntryKey identifies entries inside the cart collection.
func EntryKey(e Entry) string { return e.ID() }

// Cart is a read model of the collection. Totals are derived on every call.
type Cart struct {
	Entries []Entry
	IsOpen  bool
}

// TotalItems sums quantities.
func (c Cart) TotalItems() int {
	total := 0
	for _, e := range c.Entries {
		total += e.Quantity
	}
	return total
}

// TotalPrice sums discounted line totals.
func (c Cart) TotalPrice() decimal.Decimal {
	total := decimal.Zero
	for _, e := range c.Entries {
		total = total.Add(e.LineTotal())
	}
	return total
}

func (c Cart) IsEmpty() bool { return len(c.Entries) == 0 }

// Entry returns the line for productID.
func (c Cart) Entry(productID string) (Entry, bool) {
	for _, e := range c.Entries {
		if e.ID() == productID {
			return e, true
		}
	}
	return Entry{}, false
}
