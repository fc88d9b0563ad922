package redisx

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

func New(addr string) *redis.Client {
	r := redis.NewClient(&redis.Options{Addr: addr})
	_ = r.WithTimeout(2 * time.Second)
	return r
}

// OrderCache holds serialized order responses keyed by order id.
// The database stays the source of truth; entries expire or are
// invalidated on status updates.
type OrderCache struct {
	RDB *redis.Client
}

func (c *OrderCache) Get(ctx context.Context, orderID int64) ([]byte, bool) {
	b, err := c.RDB.Get(ctx, fmt.Sprintf(KeyOrder, orderID)).Bytes()
	if err != nil {
		return nil, false
	}
	return b, true
}

func (c *OrderCache) Set(ctx context.Context, orderID int64, body []byte) {
	_ = c.RDB.Set(ctx, fmt.Sprintf(KeyOrder, orderID), body, TTLOrderCache).Err()
}

func (c *OrderCache) Invalidate(ctx context.Context, orderID int64) {
	_ = c.RDB.Del(ctx, fmt.Sprintf(KeyOrder, orderID)).Err()
}
