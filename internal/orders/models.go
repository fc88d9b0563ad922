package orders

import (
	"errors"
	"fmt"
	"time"
)

// Order is the header record for one checkout.
type Order struct {
	ID        int64     `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	Status    string    `json:"status"`
	UserID    int64     `json:"userId"`
}

// OrderItem is one line of an order. Price is the extended line total
// (catalog unit price at checkout time multiplied by quantity), so later
// catalog price changes never alter historical orders.
type OrderItem struct {
	ID        int64   `json:"id"`
	OrderID   int64   `json:"orderId"`
	ProductID int64   `json:"productId"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

// OrderWithItems is the composed shape every read endpoint returns.
type OrderWithItems struct {
	Order
	Items []OrderItem `json:"items"`
}

// ItemInput is a requested line before price resolution.
type ItemInput struct {
	ProductID int64 `json:"productId"`
	Quantity  int   `json:"quantity"`
}

var ErrNotFound = errors.New("order not found")

// ProductNotFoundError aborts the whole checkout when a requested product
// does not exist in the catalog.
type ProductNotFoundError struct {
	ProductID int64
}

func (e *ProductNotFoundError) Error() string {
	return fmt.Sprintf("product not found: %d", e.ProductID)
}
