package cart

import (
	"context"
	"strings"

	"sainaman-be/internal/logger"

	"go.uber.org/zap"
)

// Service defines the business logic for carts.
type Service interface {
	Get(ctx context.Context, userID uint) ([]Line, error)
	Add(ctx context.Context, userID uint, params AddItemParams) ([]Line, error)
	UpdateQuantity(ctx context.Context, userID uint, productID string, quantity int) ([]Line, error)
	Remove(ctx context.Context, userID uint, productID string) ([]Line, error)
	Clear(ctx context.Context, userID uint) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// Get returns the user's cart lines, lazily creating an empty cart on first
// read. Lazy creation is idempotent and invisible to the caller.
func (s *service) Get(ctx context.Context, userID uint) ([]Line, error) {
	c, err := s.repo.GetCartByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if c == nil {
		c, err = s.repo.CreateCart(ctx, userID)
		if err != nil {
			return nil, err
		}
	}

	items, err := s.repo.GetItems(ctx, c.ID)
	if err != nil {
		return nil, err
	}

	return MapItemsToLines(items), nil
}

// Add merges the line into the user's cart: an existing line for the same
// product id has its quantity incremented, otherwise the line is appended.
func (s *service) Add(ctx context.Context, userID uint, params AddItemParams) ([]Line, error) {
	params.ProductID = strings.TrimSpace(params.ProductID)
	if params.ProductID == "" || params.Name == "" || params.Price < 0 {
		return nil, ErrMissingProductFields
	}

	if params.Quantity <= 0 {
		params.Quantity = 1
	}
	if params.Slug == "" {
		params.Slug = params.ProductID
	}

	c, err := s.repo.GetCartByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		c, err = s.repo.CreateCart(ctx, userID)
		if err != nil {
			return nil, err
		}
	}

	if err := s.repo.UpsertItem(ctx, c.ID, params); err != nil {
		return nil, err
	}

	logger.FromCtx(ctx).Info("product added to cart",
		zap.Uint("user_id", userID),
		zap.String("product_id", params.ProductID),
		zap.Int("quantity", params.Quantity),
	)

	items, err := s.repo.GetItems(ctx, c.ID)
	if err != nil {
		return nil, err
	}

	return MapItemsToLines(items), nil
}

// UpdateQuantity overwrites a line's quantity. Zero removes the line; an
// unknown product id is a silent no-op.
func (s *service) UpdateQuantity(ctx context.Context, userID uint, productID string, quantity int) ([]Line, error) {
	if quantity < 0 {
		return nil, ErrInvalidQuantity
	}

	productID = strings.TrimSpace(productID)

	c, err := s.repo.GetCartByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, ErrCartNotFound
	}

	if quantity == 0 {
		err = s.repo.DeleteItem(ctx, c.ID, productID)
	} else {
		err = s.repo.SetItemQuantity(ctx, c.ID, productID, quantity)
	}
	if err != nil {
		return nil, err
	}

	items, err := s.repo.GetItems(ctx, c.ID)
	if err != nil {
		return nil, err
	}

	return MapItemsToLines(items), nil
}

// Remove filters out the line for the given product id; removing an absent
// product is not an error.
func (s *service) Remove(ctx context.Context, userID uint, productID string) ([]Line, error) {
	c, err := s.repo.GetCartByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, ErrCartNotFound
	}

	if err := s.repo.DeleteItem(ctx, c.ID, strings.TrimSpace(productID)); err != nil {
		return nil, err
	}

	items, err := s.repo.GetItems(ctx, c.ID)
	if err != nil {
		return nil, err
	}

	return MapItemsToLines(items), nil
}

// Clear empties the cart in place; a user without a cart is a no-op.
func (s *service) Clear(ctx context.Context, userID uint) error {
	c, err := s.repo.GetCartByUser(ctx, userID)
	if err != nil {
		return err
	}
	if c == nil {
		return nil
	}

	return s.repo.ClearItems(ctx, c.ID)
}
