package cart

import "time"

// Cart is the per-user cart header. Created lazily, never hard-deleted.
type Cart struct {
	ID        uint
	UserID    uint
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CartItem is one line in a cart, carrying a denormalized snapshot of the
// product's display fields. At most one line exists per product id.
type CartItem struct {
	ID          uint
	CartID      uint
	ProductID   string
	Name        string
	Price       float64
	Images      []string
	Description string
	Materials   []string
	Slug        string
	Quantity    int
	InStock     bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Line is the client-facing wire shape of a cart line.
type Line struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Price       float64  `json:"price"`
	Images      []string `json:"images"`
	Description string   `json:"description"`
	Materials   []string `json:"materials"`
	Slug        string   `json:"slug"`
	Quantity    int      `json:"quantity"`
	InStock     bool     `json:"in_stock"`
}

type AddItemParams struct {
	ProductID   string
	Name        string
	Price       float64
	Images      []string
	Description string
	Materials   []string
	Slug        string
	Quantity    int
}
