// Package kvstore persists the cart as {"product": ..., "quantity": n} entries.
package kvstore

import (
	"context"
	_ "embed"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/Apurer/go-petfoster-collections/internal/domains/cart/domain"
	"github.com/Apurer/go-petfoster-collections/internal/platform/kv"
	"github.com/Apurer/go-petfoster-collections/internal/shared/collection"
	"github.com/Apurer/go-petfoster-collections/internal/shared/persistence"
)

//go:embed schema.json
var schema []byte

var _ collection.Persister[domain.Entry] = (*Store)(nil)

// ProductRecord is the persisted product snapshot.
type ProductRecord struct {
	ID          string          `json:"id"`
	Name        string          `json:"name,omitempty"`
	Description string          `json:"description,omitempty"`
	Category    string          `json:"category,omitempty"`
	ImageURL    string          `json:"imageUrl,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Discount    decimal.Decimal `json:"discount"`
}

// EntryRecord is one persisted cart line.
type EntryRecord struct {
	Product  ProductRecord `json:"product"`
	Quantity int           `json:"quantity"`
}

// Store maps cart entries onto a kv.Store key.
type Store struct {
	adapter *persistence.Adapter[EntryRecord]
}

// NewStore binds the cart to store under domain.StorageKey.
func NewStore(store kv.Store, logger *slog.Logger) (*Store, error) {
	adapter, err := persistence.NewAdapter[EntryRecord](store, domain.StorageKey,
		persistence.WithLogger(logger),
		persistence.WithSchema(schema),
	)
	if err != nil {
		return nil, err
	}
	return &Store{adapter: adapter}, nil
}

func (s *Store) Save(ctx context.Context, entries []domain.Entry) {
	records := make([]EntryRecord, 0, len(entries))
	for _, e := range entries {
		records = append(records, toRecord(e))
	}
	s.adapter.Save(ctx, records)
}

func (s *Store) Load(ctx context.Context) []domain.Entry {
	records := s.adapter.Load(ctx)
	entries := make([]domain.Entry, 0, len(records))
	for _, r := range records {
		entries = append(entries, toDomain(r))
	}
	return entries
}

func (s *Store) Purge(ctx context.Context) {
	s.adapter.Purge(ctx)
}

func toRecord(e domain.Entry) EntryRecord {
	p := e.Product
	return EntryRecord{
		Product: ProductRecord{
			ID:          p.ID,
			Name:        p.Name,
			Description: p.Description,
			Category:    p.Category,
			ImageURL:    p.ImageURL,
			Price:       p.Price,
			Discount:    p.Discount,
		},
		Quantity: e.Quantity,
	}
}

func toDomain(r EntryRecord) domain.Entry {
	p := r.Product
	return domain.Entry{
		Product: domain.Product{
			ID:          p.ID,
			Name:        p.Name,
			Description: p.Description,
			Category:    p.Category,
			ImageURL:    p.ImageURL,
			Price:       p.Price,
			Discount:    p.Discount,
		},
		Quantity: r.Quantity,
	}
}
