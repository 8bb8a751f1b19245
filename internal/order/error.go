package order

import "errors"

var (
	// -- Validation & Input --
	ErrMissingOrderFields = errors.New("customer name, email, shipping address, and items are required")
	ErrInvalidStatus      = errors.New("unknown order status")
	ErrIllegalTransition  = errors.New("illegal order status transition")

	// -- Resource State --
	ErrOrderNotFound  = errors.New("order not found")
	ErrDuplicateOrder = errors.New("order already placed for this idempotency key")

	// -- Constants (External Systems) --
	PgUniqueViolation = "23505"
)
