package application

import (
	"errors"
	"fmt"

	"github.com/Apurer/go-petfoster-collections/internal/domains/cart/domain"
)

// ErrInvalidInput signals the request violated a cart invariant.
var ErrInvalidInput = errors.New("invalid cart input")

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrMissingProductID) ||
		errors.Is(err, domain.ErrInvalidQuantity) ||
		errors.Is(err, domain.ErrQuantityLimit) ||
		errors.Is(err, domain.ErrInvalidPrice) ||
		errors.Is(err, domain.ErrInvalidDiscount) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}
