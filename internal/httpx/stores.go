package httpx

import (
	"context"

	"github.com/segmentio/kafka-go"

	"github.com/ariefcatur/go-ecommerce-api/internal/catalog"
	"github.com/ariefcatur/go-ecommerce-api/internal/orders"
	"github.com/ariefcatur/go-ecommerce-api/internal/users"
)

// Store interfaces the handlers depend on. Production wiring passes the
// pgx-backed repos; tests pass in-memory fakes.

type UserStore interface {
	Create(ctx context.Context, p users.CreateParams) (users.User, error)
	GetByEmail(ctx context.Context, email string) (users.User, error)
}

type ProductStore interface {
	Create(ctx context.Context, p catalog.CreateParams) (catalog.Product, error)
	List(ctx context.Context) ([]catalog.Product, error)
	GetByID(ctx context.Context, id int64) (catalog.Product, error)
	Update(ctx context.Context, id int64, p catalog.UpdateParams) (catalog.Product, error)
	Delete(ctx context.Context, id int64) (catalog.Product, error)
}

type OrderStore interface {
	Create(ctx context.Context, userID int64, items []orders.ItemInput) (orders.OrderWithItems, error)
	ListByUser(ctx context.Context, userID int64) ([]orders.OrderWithItems, error)
	GetByID(ctx context.Context, id int64) (orders.OrderWithItems, error)
	UpdateStatus(ctx context.Context, id int64, status string) (orders.Order, error)
}

// OrderCache is a read-through cache for single-order responses; the
// database stays authoritative.
type OrderCache interface {
	Get(ctx context.Context, orderID int64) ([]byte, bool)
	Set(ctx context.Context, orderID int64, body []byte)
	Invalidate(ctx context.Context, orderID int64)
}

// Publisher is satisfied by the kafka producer.
type Publisher interface {
	Publish(key, value []byte, headers ...kafka.Header)
}
