// Package kvstore persists favorites as a bare array of listing snapshots.
package kvstore

import (
	"context"
	_ "embed"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/Apurer/go-petfoster-collections/internal/domains/favorites/domain"
	"github.com/Apurer/go-petfoster-collections/internal/platform/kv"
	"github.com/Apurer/go-petfoster-collections/internal/shared/collection"
	"github.com/Apurer/go-petfoster-collections/internal/shared/persistence"
)

//go:embed schema.json
var schema []byte

var _ collection.Persister[domain.FosterService] = (*Store)(nil)

// ServiceRecord is the persisted listing snapshot.
type ServiceRecord struct {
	ID           string          `json:"id"`
	Title        string          `json:"title,omitempty"`
	ProviderName string          `json:"providerName,omitempty"`
	Location     string          `json:"location,omitempty"`
	ImageURL     string          `json:"imageUrl,omitempty"`
	Species      []string        `json:"species,omitempty"`
	NightlyRate  decimal.Decimal `json:"nightlyRate"`
	Rating       float64         `json:"rating,omitempty"`
}

type Store struct {
	adapter *persistence.Adapter[ServiceRecord]
}

// NewStore binds favorites to store under domain.StorageKey.
func NewStore(store kv.Store, logger *slog.Logger) (*Store, error) {
	adapter, err := persistence.NewAdapter[ServiceRecord](store, domain.StorageKey,
		persistence.WithLogger(logger),
		persistence.WithSchema(schema),
	)
	if err != nil {
		return nil, err
	}
	return &Store{adapter: adapter}, nil
}

func (s *Store) Save(ctx context.Context, services []domain.FosterService) {
	records := make([]ServiceRecord, 0, len(services))
	for _, f := range services {
		records = append(records, ServiceRecord{
			ID:           f.ID,
			Title:        f.Title,
			ProviderName: f.ProviderName,
			Location:     f.Location,
			ImageURL:     f.ImageURL,
			Species:      f.Species,
			NightlyRate:  f.NightlyRate,
			Rating:       f.Rating,
		})
	}
	s.adapter.Save(ctx, records)
}

func (s *Store) Load(ctx context.Context) []domain.FosterService {
	records := s.adapter.Load(ctx)
	services := make([]domain.FosterService, 0, len(records))
	for _, r := range records {
		services = append(services, domain.FosterService{
			ID:           r.ID,
			Title:        r.Title,
			ProviderName: r.ProviderName,
			Location:     r.Location,
			ImageURL:     r.ImageURL,
			Species:      r.Species,
			NightlyRate:  r.NightlyRate,
			Rating:       r.Rating,
		})
	}
	return services
}

func (s *Store) Purge(ctx context.Context) {
	s.adapter.Purge(ctx)
}
