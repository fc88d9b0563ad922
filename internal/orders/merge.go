package orders

// joinedRow is one row of the order/order_items left join. Item is nil when
// the order has no items (all item columns came back NULL).
type joinedRow struct {
	Order Order
	Item  *OrderItem
}

// mergeJoined folds the left-join rows for a single order into one
// OrderWithItems. The header fields repeat on every row, so any row can
// supply them; an all-NULL item projection means "no items", not a
// phantom item. ok is false when there were no rows at all.
func mergeJoined(rows []joinedRow) (OrderWithItems, bool) {
	if len(rows) == 0 {
		return OrderWithItems{}, false
	}
	out := OrderWithItems{
		Order: rows[0].Order,
		Items: make([]OrderItem, 0, len(rows)),
	}
	for _, row := range rows {
		if row.Item != nil {
			out.Items = append(out.Items, *row.Item)
		}
	}
	return out, true
}

// attachItems associates each item to its order by orderId equality.
// Orders keep their input ordering; an order with no items gets an empty
// slice, never nil.
func attachItems(orders []Order, items []OrderItem) []OrderWithItems {
	byOrder := make(map[int64][]OrderItem, len(orders))
	for _, it := range items {
		byOrder[it.OrderID] = append(byOrder[it.OrderID], it)
	}
	out := make([]OrderWithItems, 0, len(orders))
	for _, o := range orders {
		its := byOrder[o.ID]
		if its == nil {
			its = []OrderItem{}
		}
		out = append(out, OrderWithItems{Order: o, Items: its})
	}
	return out
}
