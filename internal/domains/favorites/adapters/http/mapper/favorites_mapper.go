package mapper

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Apurer/go-petfoster-collections/internal/domains/favorites/domain"
	"github.com/Apurer/go-petfoster-collections/internal/domains/favorites/ports"
)

// FosterService is the HTTP representation of a listing snapshot.
type FosterService struct {
	ID           string          `json:"id"`
	Title        string          `json:"title,omitempty"`
	ProviderName string          `json:"providerName,omitempty"`
	Location     string          `json:"location,omitempty"`
	ImageURL     string          `json:"imageUrl,omitempty"`
	Species      []string        `json:"species,omitempty"`
	NightlyRate  decimal.Decimal `json:"nightlyRate"`
	Rating       float64         `json:"rating,omitempty"`
}

// Favorites is the panel view.
type Favorites struct {
	Items      []FosterService `json:"items"`
	TotalItems int             `json:"totalItems"`
	IsOpen     bool            `json:"isOpen"`
	IsEmpty    bool            `json:"isEmpty"`
	Revision   uint64          `json:"revision"`
	UpdatedAt  *time.Time      `json:"updatedAt,omitempty"`
}

// Membership answers toggle and membership queries.
type Membership struct {
	ID        string    `json:"id"`
	Member    bool      `json:"member"`
	Favorites Favorites `json:"favorites"`
}

type Badge struct {
	Count int `json:"count"`
}

type Continue struct {
	Location  string    `json:"location"`
	Favorites Favorites `json:"favorites"`
}

func ToAddInput(payload FosterService) ports.AddInput {
	return ports.AddInput{
		ServiceID:    payload.ID,
		Title:        payload.Title,
		ProviderName: payload.ProviderName,
		Location:     payload.Location,
		ImageURL:     payload.ImageURL,
		Species:      append([]string(nil), payload.Species...),
		NightlyRate:  payload.NightlyRate,
		Rating:       payload.Rating,
	}
}

func FromDomain(f domain.FosterService) FosterService {
	return FosterService{
		ID:           f.ID,
		Title:        f.Title,
		ProviderName: f.ProviderName,
		Location:     f.Location,
		ImageURL:     f.ImageURL,
		Species:      append([]string(nil), f.Species...),
		NightlyRate:  f.NightlyRate,
		Rating:       f.Rating,
	}
}

// FromProjection renders the favorites read model.
func FromProjection(proj *ports.FavoritesProjection) Favorites {
	if proj == nil {
		return Favorites{Items: []FosterService{}, IsEmpty: true}
	}
	items := make([]FosterService, 0, len(proj.Entity.Services))
	for _, s := range proj.Entity.Services {
		items = append(items, FromDomain(s))
	}
	out := Favorites{
		Items:      items,
		TotalItems: proj.Entity.TotalItems(),
		IsOpen:     proj.Entity.IsOpen,
		IsEmpty:    proj.Entity.IsEmpty(),
		Revision:   proj.Metadata.Revision,
	}
	if !proj.Metadata.UpdatedAt.IsZero() {
		updated := proj.Metadata.UpdatedAt
		out.UpdatedAt = &updated
	}
	return out
}

func ToBadge(proj *ports.FavoritesProjection) Badge {
	if proj == nil {
		return Badge{}
	}
	return Badge{Count: proj.Entity.TotalItems()}
}
