package cart

import "errors"

var (
	// -- Validation & Input --
	ErrMissingProductFields = errors.New("product id, name, and price are required")
	ErrInvalidQuantity      = errors.New("quantity must be positive")

	// -- Resource State --
	ErrCartNotFound = errors.New("cart not found")
)
