package mapper

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Apurer/go-petfoster-collections/internal/domains/cart/domain"
	"github.com/Apurer/go-petfoster-collections/internal/domains/cart/ports"
)

// Product is the HTTP representation of a product snapshot.
type Product struct {
	ID          string          `json:"id"`
	Name        string          `json:"name,omitempty"`
	Description string          `json:"description,omitempty"`
	Category    string          `json:"category,omitempty"`
	ImageURL    string          `json:"imageUrl,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Discount    decimal.Decimal `json:"discount"`
}

// AddItem is the payload of POST /v1/cart/items. The max tags mirror domain.MaxQuantity.
type AddItem struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity,omitempty" binding:"max=999"`
}

// UpdateQuantity is the payload of PATCH /v1/cart/items/:id.
type UpdateQuantity struct {
	Quantity *int `json:"quantity" binding:"required,max=999"`
}

// Entry is a cart line with derived prices.
type Entry struct {
	Product   Product         `json:"product"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	LineTotal decimal.Decimal `json:"lineTotal"`
}

// Cart is the panel view of the cart.
type Cart struct {
	Items      []Entry         `json:"items"`
	TotalItems int             `json:"totalItems"`
	TotalPrice decimal.Decimal `json:"totalPrice"`
	IsOpen     bool            `json:"isOpen"`
	IsEmpty    bool            `json:"isEmpty"`
	Revision   uint64          `json:"revision"`
	UpdatedAt  *time.Time      `json:"updatedAt,omitempty"`
}

// Badge is the header counter view.
type Badge struct {
	Count int `json:"count"`
}

// Continue answers a continue-shopping request.
type Continue struct {
	Location string `json:"location"`
	Cart     Cart   `json:"cart"`
}

// ToAddItemInput maps the transport payload onto the application input.
func ToAddItemInput(payload AddItem) ports.AddItemInput {
	p := payload.Product
	return ports.AddItemInput{
		ProductID:   p.ID,
		Name:        p.Name,
		Description: p.Description,
		Category:    p.Category,
		ImageURL:    p.ImageURL,
		Price:       p.Price,
		Discount:    p.Discount,
		Quantity:    payload.Quantity,
	}
}

// FromProjection renders the cart read model.
func FromProjection(proj *ports.CartProjection) Cart {
	if proj == nil {
		return Cart{Items: []Entry{}, TotalPrice: decimal.Zero, IsEmpty: true}
	}
	c := proj.Entity
	items := make([]Entry, 0, len(c.Entries))
	for _, e := range c.Entries {
		items = append(items, FromDomainEntry(e))
	}
	out := Cart{
		Items:      items,
		TotalItems: c.TotalItems(),
		TotalPrice: c.TotalPrice(),
		IsOpen:     c.IsOpen,
		IsEmpty:    c.IsEmpty(),
		Revision:   proj.Metadata.Revision,
	}
	if !proj.Metadata.UpdatedAt.IsZero() {
		updated := proj.Metadata.UpdatedAt
		out.UpdatedAt = &updated
	}
	return out
}

func FromDomainEntry(e domain.Entry) Entry {
	p := e.Product
	return Entry{
		Product: Product{
			ID:          p.ID,
			Name:        p.Name,
			Description: p.Description,
			Category:    p.Category,
			ImageURL:    p.ImageURL,
			Price:       p.Price,
			Discount:    p.Discount,
		},
		Quantity:  e.Quantity,
		UnitPrice: p.UnitPrice(),
		LineTotal: e.LineTotal(),
	}
}

func ToBadge(proj *ports.CartProjection) Badge {
	if proj == nil {
		return Badge{}
	}
	return Badge{Count: proj.Entity.TotalItems()}
}
