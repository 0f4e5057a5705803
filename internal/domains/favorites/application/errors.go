package application

import (
	"errors"
	"fmt"

	"github.com/Apurer/go-petfoster-collections/internal/domains/favorites/domain"
)

// ErrInvalidInput signals the request violated a favorites invariant.
var ErrInvalidInput = errors.New("invalid favorites input")

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrMissingServiceID) ||
		errors.Is(err, domain.ErrInvalidRate) ||
		errors.Is(err, domain.ErrInvalidRating) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}
