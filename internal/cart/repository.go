package cart

import (
	"context"
	"database/sql"

	"sainaman-be/internal/logger"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

type Repository interface {
	GetCartByUser(ctx context.Context, userID uint) (*Cart, error)
	CreateCart(ctx context.Context, userID uint) (*Cart, error)
	GetItems(ctx context.Context, cartID uint) ([]CartItem, error)
	UpsertItem(ctx context.Context, cartID uint, params AddItemParams) error
	SetItemQuantity(ctx context.Context, cartID uint, productID string, quantity int) error
	DeleteItem(ctx context.Context, cartID uint, productID string) error
	ClearItems(ctx context.Context, cartID uint) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetCartByUser(ctx context.Context, userID uint) (*Cart, error) {
	query := `
		SELECT id, user_id, created_at, updated_at
		FROM carts
		WHERE user_id = $1
	`

	var c Cart
	err := r.db.QueryRowContext(ctx, query, userID).
		Scan(&c.ID, &c.UserID, &c.CreatedAt, &c.UpdatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &c, nil
}

func (r *repository) CreateCart(ctx context.Context, userID uint) (*Cart, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "CreateCart"),
		zap.Uint("user_id", userID),
	)

	query := `
		INSERT INTO carts (user_id)
		VALUES ($1)
		ON CONFLICT (user_id) DO UPDATE SET updated_at = NOW()
		RETURNING id, user_id, created_at, updated_at
	`

	var c Cart
	err := r.db.QueryRowContext(ctx, query, userID).
		Scan(&c.ID, &c.UserID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		log.Error("failed to create cart", zap.Error(err))
		return nil, err
	}

	log.Debug("cart ready", zap.Uint("cart_id", c.ID))
	return &c, nil
}

func (r *repository) GetItems(ctx context.Context, cartID uint) ([]CartItem, error) {
	query := `
		SELECT
			id, cart_id, product_id, name, price,
			images, description, materials, slug,
			quantity, in_stock, created_at, updated_at
		FROM cart_items
		WHERE cart_id = $1
		ORDER BY created_at, id
	`

	rows, err := r.db.QueryContext(ctx, query, cartID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]CartItem, 0)
	for rows.Next() {
		var item CartItem
		if err := rows.Scan(
			&item.ID,
			&item.CartID,
			&item.ProductID,
			&item.Name,
			&item.Price,
			pq.Array(&item.Images),
			&item.Description,
			pq.Array(&item.Materials),
			&item.Slug,
			&item.Quantity,
			&item.InStock,
			&item.CreatedAt,
			&item.UpdatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}

// UpsertItem appends a new line or increments the quantity of the existing
// line for the same product id in a single statement, so two concurrent adds
// cannot lose an update.
func (r *repository) UpsertItem(ctx context.Context, cartID uint, params AddItemParams) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "UpsertItem"),
		zap.Uint("cart_id", cartID),
		zap.String("product_id", params.ProductID),
	)

	query := `
		INSERT INTO cart_items (
			cart_id, product_id, name, price,
			images, description, materials, slug, quantity
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (cart_id, product_id) DO UPDATE
		SET quantity = cart_items.quantity + EXCLUDED.quantity,
		    updated_at = NOW()
	`

	_, err := r.db.ExecContext(ctx, query,
		cartID,
		params.ProductID,
		params.Name,
		params.Price,
		pq.Array(params.Images),
		params.Description,
		pq.Array(params.Materials),
		params.Slug,
		params.Quantity,
	)
	if err != nil {
		log.Error("failed to upsert cart item", zap.Error(err))
		return err
	}

	log.Debug("cart item upserted", zap.Int("quantity", params.Quantity))
	return nil
}

// SetItemQuantity overwrites the quantity of an existing line. A missing
// product id is a silent no-op so client retries stay idempotent.
func (r *repository) SetItemQuantity(ctx context.Context, cartID uint, productID string, quantity int) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE cart_items
		SET quantity = $1, updated_at = NOW()
		WHERE cart_id = $2 AND product_id = $3
	`, quantity, cartID, productID)

	return err
}

// DeleteItem is idempotent: removing an absent product is not an error.
func (r *repository) DeleteItem(ctx context.Context, cartID uint, productID string) error {
	_, err := r.db.ExecContext(ctx, `
		DELETE FROM cart_items
		WHERE cart_id = $1 AND product_id = $2
	`, cartID, productID)

	return err
}

func (r *repository) ClearItems(ctx context.Context, cartID uint) error {
	_, err := r.db.ExecContext(ctx, `
		DELETE FROM cart_items
		WHERE cart_id = $1
	`, cartID)

	return err
}
