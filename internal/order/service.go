package order

import (
	"context"
	"errors"

	"sainaman-be/internal/logger"

	"go.uber.org/zap"
)

// Service defines the business logic for orders.
type Service interface {
	Place(ctx context.Context, input PlaceOrderInput) (uint, error)
	Get(ctx context.Context, orderID uint) (*Order, []OrderItem, error)
	ListByCustomer(ctx context.Context, email string) ([]Order, error)
	UpdateStatus(ctx context.Context, orderID uint, status Status) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// Place converts a checkout submission into a persisted order header plus its
// immutable items. Both writes commit atomically; the id is only reported
// after commit. Status is forced to pending regardless of the payload.
// Submitted subtotals and the total are trusted as given.
func (s *service) Place(ctx context.Context, input PlaceOrderInput) (uint, error) {
	if input.CustomerName == "" || input.CustomerEmail == "" ||
		input.ShippingAddress == "" || input.Items == nil {
		return 0, ErrMissingOrderFields
	}

	// A duplicate submission with the same idempotency key returns the
	// already-placed order instead of creating a second one.
	if input.IdempotencyKey != "" {
		existing, err := s.repo.GetByIdempotencyKey(ctx, input.IdempotencyKey)
		if err != nil {
			return 0, err
		}
		if existing != nil {
			logger.FromCtx(ctx).Info("duplicate checkout suppressed",
				zap.Uint("order_id", existing.ID),
			)
			return existing.ID, nil
		}
	}

	o := &Order{
		CustomerName:    input.CustomerName,
		CustomerEmail:   input.CustomerEmail,
		CustomerPhone:   input.CustomerPhone,
		ShippingAddress: input.ShippingAddress,
		City:            input.City,
		PostalCode:      input.PostalCode,
		Country:         input.Country,
		TotalAmount:     input.TotalAmount,
		Status:          StatusPending,
	}

	err := s.repo.CreateOrderTx(ctx, o, input.Items, input.IdempotencyKey)
	if errors.Is(err, ErrDuplicateOrder) {
		// Lost a race with a concurrent identical submission.
		existing, lookupErr := s.repo.GetByIdempotencyKey(ctx, input.IdempotencyKey)
		if lookupErr != nil || existing == nil {
			return 0, err
		}
		return existing.ID, nil
	}
	if err != nil {
		return 0, err
	}

	return o.ID, nil
}

func (s *service) Get(ctx context.Context, orderID uint) (*Order, []OrderItem, error) {
	o, err := s.repo.GetOrder(ctx, orderID)
	if err != nil {
		return nil, nil, err
	}

	items, err := s.repo.GetOrderItems(ctx, orderID)
	if err != nil {
		return nil, nil, err
	}

	return o, items, nil
}

func (s *service) ListByCustomer(ctx context.Context, email string) ([]Order, error) {
	if email == "" {
		return nil, ErrOrderNotFound
	}
	return s.repo.ListByEmail(ctx, email)
}

// UpdateStatus enforces the legal lifecycle: pending → processing|cancelled,
// processing → shipped|cancelled, shipped → delivered|cancelled.
func (s *service) UpdateStatus(ctx context.Context, orderID uint, status Status) error {
	if !status.Valid() {
		return ErrInvalidStatus
	}

	current, err := s.repo.GetOrder(ctx, orderID)
	if err != nil {
		return err
	}

	if !current.Status.CanTransitionTo(status) {
		return ErrIllegalTransition
	}

	return s.repo.UpdateStatus(ctx, orderID, status)
}
