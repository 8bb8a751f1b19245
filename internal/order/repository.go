package order

import (
	"context"
	"database/sql"

	"sainaman-be/internal/logger"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

type Repository interface {
	CreateOrderTx(ctx context.Context, o *Order, items []PlaceOrderItem, idempotencyKey string) error
	GetOrder(ctx context.Context, orderID uint) (*Order, error)
	GetOrderItems(ctx context.Context, orderID uint) ([]OrderItem, error)
	GetByIdempotencyKey(ctx context.Context, key string) (*Order, error)
	ListByEmail(ctx context.Context, email string) ([]Order, error)
	UpdateStatus(ctx context.Context, orderID uint, status Status) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

// CreateOrderTx inserts the order header and its items inside one
// transaction, so the header and items appear atomically or not at all.
// The order id is filled in on commit.
func (r *repository) CreateOrderTx(ctx context.Context, o *Order, items []PlaceOrderItem, idempotencyKey string) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "CreateOrderTx"),
		zap.String("customer_email", o.CustomerEmail),
		zap.Int("item_count", len(items)),
	)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("failed to begin transaction", zap.Error(err))
		return err
	}

	committed := false
	defer func() {
		if !committed {
			if rbErr := tx.Rollback(); rbErr != nil {
				log.Error("failed to rollback transaction", zap.Error(rbErr))
			} else {
				log.Debug("transaction rolled back")
			}
		}
	}()

	var key *string
	if idempotencyKey != "" {
		key = &idempotencyKey
	}

	var orderID uint
	err = tx.QueryRowContext(ctx, `
		INSERT INTO orders (
			customer_name, customer_email, customer_phone,
			shipping_address, city, postal_code, country,
			total_amount, status, idempotency_key
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
		RETURNING id
	`,
		o.CustomerName,
		o.CustomerEmail,
		o.CustomerPhone,
		o.ShippingAddress,
		o.City,
		o.PostalCode,
		o.Country,
		o.TotalAmount,
		o.Status,
		key,
	).Scan(&orderID)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && string(pqErr.Code) == PgUniqueViolation {
			log.Warn("duplicate idempotency key", zap.String("key", idempotencyKey))
			return ErrDuplicateOrder
		}
		log.Error("failed to insert order header", zap.Error(err))
		return err
	}

	for i, item := range items {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO order_items (
				order_id, product_id, product_name,
				product_price, quantity, subtotal
			) VALUES ($1,$2,$3,$4,$5,$6)
		`,
			orderID,
			item.ProductID,
			item.ProductName,
			item.ProductPrice,
			item.Quantity,
			item.Subtotal,
		)
		if err != nil {
			log.Error("failed to insert order item",
				zap.Int("item_index", i),
				zap.String("product_id", item.ProductID),
				zap.Error(err),
			)
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		log.Error("failed to commit order transaction", zap.Error(err))
		return err
	}

	committed = true
	o.ID = orderID

	log.Info("order placed", zap.Uint("order_id", orderID))
	return nil
}

func (r *repository) GetOrder(ctx context.Context, orderID uint) (*Order, error) {
	query := `
		SELECT
			id, customer_name, customer_email, customer_phone,
			shipping_address, city, postal_code, country,
			total_amount, status, created_at, updated_at
		FROM orders
		WHERE id = $1
	`

	var o Order
	err := r.db.QueryRowContext(ctx, query, orderID).Scan(
		&o.ID,
		&o.CustomerName,
		&o.CustomerEmail,
		&o.CustomerPhone,
		&o.ShippingAddress,
		&o.City,
		&o.PostalCode,
		&o.Country,
		&o.TotalAmount,
		&o.Status,
		&o.CreatedAt,
		&o.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}

	return &o, nil
}

func (r *repository) GetOrderItems(ctx context.Context, orderID uint) ([]OrderItem, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, order_id, product_id, product_name, product_price, quantity, subtotal
		FROM order_items
		WHERE order_id = $1
		ORDER BY id
	`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]OrderItem, 0)
	for rows.Next() {
		var item OrderItem
		if err := rows.Scan(
			&item.ID,
			&item.OrderID,
			&item.ProductID,
			&item.ProductName,
			&item.ProductPrice,
			&item.Quantity,
			&item.Subtotal,
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

func (r *repository) GetByIdempotencyKey(ctx context.Context, key string) (*Order, error) {
	var o Order
	err := r.db.QueryRowContext(ctx, `
		SELECT id, status, total_amount
		FROM orders
		WHERE idempotency_key = $1
	`, key).Scan(&o.ID, &o.Status, &o.TotalAmount)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &o, nil
}

func (r *repository) ListByEmail(ctx context.Context, email string) ([]Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "ListByEmail"),
	)

	rows, err := r.db.QueryContext(ctx, `
		SELECT
			id, customer_name, customer_email, customer_phone,
			shipping_address, city, postal_code, country,
			total_amount, status, created_at, updated_at
		FROM orders
		WHERE customer_email = $1
		ORDER BY created_at DESC
	`, email)
	if err != nil {
		log.Error("failed to query orders", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	orders := make([]Order, 0)
	for rows.Next() {
		var o Order
		if err := rows.Scan(
			&o.ID,
			&o.CustomerName,
			&o.CustomerEmail,
			&o.CustomerPhone,
			&o.ShippingAddress,
			&o.City,
			&o.PostalCode,
			&o.Country,
			&o.TotalAmount,
			&o.Status,
			&o.CreatedAt,
			&o.UpdatedAt,
		); err != nil {
			log.Error("failed to scan order row", zap.Error(err))
			return nil, err
		}
		orders = append(orders, o)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}

func (r *repository) UpdateStatus(ctx context.Context, orderID uint, status Status) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE orders
		SET status = $1, updated_at = NOW()
		WHERE id = $2
	`, status, orderID)
	if err != nil {
		return err
	}

	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrOrderNotFound
	}

	return nil
}
