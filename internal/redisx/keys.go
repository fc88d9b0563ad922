package redisx

import "time"

const (
	// Cached GET /orders/{id} response body: order:{order_id}
	KeyOrder = "order:%d"
)

var TTLOrderCache = 5 * time.Minute
