package domain

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

// StorageKey is the durable key of the favorites list. Changing it orphans saved lists.
const StorageKey = "favorites"

var (
	ErrMissingServiceID = errors.New("foster service id is required")
	ErrInvalidRate      = errors.New("nightly rate must be greater or equal to zero")
	ErrInvalidRating    = errors.New("rating must be between 0 and 5")
)

// FosterService is the listing snapshot captured when it was favorited.
type FosterService struct {
	ID           string
	Title        string
	ProviderName string
	Location     string
	ImageURL     string
	Species      []string
	NightlyRate  decimal.Decimal
	Rating       float64
}

// Validate checks the snapshot can be stored.
func (f FosterService) Validate() error {
	if strings.TrimSpace(f.ID) == "" {
		return ErrMissingServiceID
	}
	if f.NightlyRate.IsNegative() {
		return ErrInvalidRate
	}
	if f.Rating < 0 || f.Rating > 5 {
		return ErrInvalidRating
	}
	return nil
}

func (f FosterService) Valid() bool { return f.Validate() == nil }

// Clone copies the snapshot so callers cannot alias the species slice.
func (f FosterService) Clone() FosterService {
	if f.Species != nil {
		f.Species = append([]string(nil), f.Species...)
	}
	return f
}

// ServiceKey identifies listings inside the favorites collection.
func ServiceKey(f FosterService) string { return f.ID }

// Favorites is a read model of the collection.
type Favorites struct {
	Services []FosterService
	IsOpen   bool
}

// TotalItems counts entries; favorites are membership, not quantities.
func (f Favorites) TotalItems() int { return len(f.Services) }

func (f Favorites) IsEmpty() bool { return len(f.Services) == 0 }

// Contains reports whether id was favorited.
func (f Favorites) Contains(id string) bool {
	_, ok := f.Service(id)
	return ok
}

func (f Favorites) Service(id string) (FosterService, bool) {
	for _, s := range f.Services {
		if s.ID == id {
			return s, true
		}
	}
	return FosterService{}, false
}
