package orders

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repo struct{ DB *pgxpool.Pool }

const orderCols = "id, created_at, status, user_id"
const itemCols = "id, order_id, product_id, quantity, price"

func scanOrder(row pgx.Row) (Order, error) {
	var o Order
	err := row.Scan(&o.ID, &o.CreatedAt, &o.Status, &o.UserID)
	return o, err
}

// Create inserts the order header, resolves each line's authoritative price
// from the products table, and inserts the line items — all in a single
// transaction so a failure cannot leave a header without its items.
// A requested product that does not exist aborts the whole order with
// *ProductNotFoundError.
func (r *Repo) Create(ctx context.Context, userID int64, items []ItemInput) (OrderWithItems, error) {
	tx, err := r.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return OrderWithItems{}, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	order, err := scanOrder(tx.QueryRow(ctx,
		`INSERT INTO orders (user_id) VALUES ($1) RETURNING `+orderCols, userID))
	if err != nil {
		return OrderWithItems{}, err
	}

	// resolve unit prices from the catalog; never trust client prices
	prices, err := resolvePrices(ctx, tx, items)
	if err != nil {
		return OrderWithItems{}, err
	}

	out := OrderWithItems{Order: order, Items: make([]OrderItem, 0, len(items))}
	for _, in := range items {
		unit, ok := prices[in.ProductID]
		if !ok {
			return OrderWithItems{}, &ProductNotFoundError{ProductID: in.ProductID}
		}
		var item OrderItem
		err := tx.QueryRow(ctx, `
			INSERT INTO order_items (order_id, product_id, quantity, price)
			VALUES ($1, $2, $3, $4)
			RETURNING `+itemCols,
			order.ID, in.ProductID, in.Quantity, unit*float64(in.Quantity),
		).Scan(&item.ID, &item.OrderID, &item.ProductID, &item.Quantity, &item.Price)
		if err != nil {
			return OrderWithItems{}, err
		}
		out.Items = append(out.Items, item)
	}

	if err := tx.Commit(ctx); err != nil {
		return OrderWithItems{}, err
	}
	return out, nil
}

func resolvePrices(ctx context.Context, tx pgx.Tx, items []ItemInput) (map[int64]float64, error) {
	ids := make([]any, 0, len(items))
	params := ""
	for i, in := range items {
		if i > 0 {
			params += ","
		}
		params += fmt.Sprintf("$%d", i+1)
		ids = append(ids, in.ProductID)
	}
	rows, err := tx.Query(ctx, `SELECT id, price FROM products WHERE id IN (`+params+`)`, ids...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	prices := make(map[int64]float64, len(items))
	for rows.Next() {
		var id int64
		var price float64
		if err := rows.Scan(&id, &price); err != nil {
			return nil, err
		}
		prices[id] = price
	}
	return prices, rows.Err()
}

// ListByUser returns the user's orders with nested items: two queries
// merged in memory rather than a database join. Orders are sorted by
// creation time then id for a deterministic result.
func (r *Repo) ListByUser(ctx context.Context, userID int64) ([]OrderWithItems, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT `+orderCols+` FROM orders
		WHERE user_id = $1
		ORDER BY created_at, id`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ownOrders []Order
	ids := make([]int64, 0)
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		ownOrders = append(ownOrders, o)
		ids = append(ids, o.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(ownOrders) == 0 {
		return []OrderWithItems{}, nil
	}

	itemRows, err := r.DB.Query(ctx, `
		SELECT `+itemCols+` FROM order_items
		WHERE order_id = ANY($1)
		ORDER BY id`, ids)
	if err != nil {
		return nil, err
	}
	defer itemRows.Close()

	var items []OrderItem
	for itemRows.Next() {
		var it OrderItem
		if err := itemRows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.Quantity, &it.Price); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	if err := itemRows.Err(); err != nil {
		return nil, err
	}

	return attachItems(ownOrders, items), nil
}

// GetByID fetches one order with its items via a left outer join, so an
// order with zero items still produces a row (with NULL item columns).
func (r *Repo) GetByID(ctx context.Context, id int64) (OrderWithItems, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT o.id, o.created_at, o.status, o.user_id,
		       i.id, i.order_id, i.product_id, i.quantity, i.price
		FROM orders o
		LEFT JOIN order_items i ON i.order_id = o.id
		WHERE o.id = $1
		ORDER BY i.id`, id)
	if err != nil {
		return OrderWithItems{}, err
	}
	defer rows.Close()

	var joined []joinedRow
	for rows.Next() {
		var row joinedRow
		var itemID, orderID, productID *int64
		var quantity *int
		var price *float64
		err := rows.Scan(&row.Order.ID, &row.Order.CreatedAt, &row.Order.Status, &row.Order.UserID,
			&itemID, &orderID, &productID, &quantity, &price)
		if err != nil {
			return OrderWithItems{}, err
		}
		if itemID != nil {
			row.Item = &OrderItem{
				ID:        *itemID,
				OrderID:   *orderID,
				ProductID: *productID,
				Quantity:  *quantity,
				Price:     *price,
			}
		}
		joined = append(joined, row)
	}
	if err := rows.Err(); err != nil {
		return OrderWithItems{}, err
	}

	out, ok := mergeJoined(joined)
	if !ok {
		return OrderWithItems{}, ErrNotFound
	}
	return out, nil
}

// UpdateStatus sets only the status column and returns the updated header.
// Status values are deliberately unconstrained beyond length (enforced by
// the column type); there is no state machine.
func (r *Repo) UpdateStatus(ctx context.Context, id int64, status string) (Order, error) {
	order, err := scanOrder(r.DB.QueryRow(ctx, `
		UPDATE orders SET status = $1 WHERE id = $2
		RETURNING `+orderCols, status, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return Order{}, ErrNotFound
	}
	if err != nil {
		return Order{}, err
	}
	return order, nil
}
