package payment

import "context"

// Gateway bridges to the external payment provider.
type Gateway interface {
	// CreateOrder registers a payment intent for the given amount in major
	// currency units and returns the provider's order descriptor.
	CreateOrder(ctx context.Context, amount float64) (*PaymentOrder, error)

	// VerifySignature checks that a payment callback genuinely originated
	// from the provider. Pure and side-effect free: same inputs always
	// yield the same verdict.
	VerifySignature(orderID, paymentID, signature string) bool
}
