package httpx

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	kafkago "github.com/segmentio/kafka-go"

	kafkax "github.com/ariefcatur/go-ecommerce-api/internal/kafka"
	"github.com/ariefcatur/go-ecommerce-api/internal/orders"
)

type OrdersHandler struct {
	Store    OrderStore
	Cache    OrderCache
	Producer Publisher
	Service  string
	Log      zerolog.Logger
}

type createOrderRequest struct {
	// the header carries no caller-supplied fields; status, timestamp and
	// owner are all server-assigned
	Order struct{}           `json:"order"`
	Items []orderItemRequest `json:"items" validate:"required,min=1,dive"`
}

type orderItemRequest struct {
	ProductID int64 `json:"productId" validate:"required,gt=0"`
	Quantity  int   `json:"quantity" validate:"required,gt=0"`
}

type updateOrderRequest struct {
	Status string `json:"status" validate:"required,max=50"`
}

// Register mounts the order routes; all of them require a bearer credential.
func (h *OrdersHandler) Register(r chi.Router, requireAuth func(http.Handler) http.Handler) {
	r.Route("/orders", func(r chi.Router) {
		r.Use(requireAuth)
		r.Post("/", h.create)
		r.Get("/", h.list)
		r.Get("/{id}", h.get)
		r.Put("/{id}", h.updateStatus)
	})
}

func (h *OrdersHandler) create(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserID(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "Access denied")
		return
	}

	var req createOrderRequest
	if errs := decodeValid(r, &req); errs != nil {
		writeFieldErrors(w, errs)
		return
	}

	items := make([]orders.ItemInput, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, orders.ItemInput{ProductID: it.ProductID, Quantity: it.Quantity})
	}

	order, err := h.Store.Create(r.Context(), userID, items)
	var missing *orders.ProductNotFoundError
	if errors.As(err, &missing) {
		// a bad product id aborts the whole order
		writeFieldErrors(w, []fieldError{{
			Type:     "field",
			Value:    missing.ProductID,
			Msg:      "Product with this ID does not exist",
			Path:     "items.productId",
			Location: "body",
		}})
		return
	}
	if err != nil {
		h.Log.Error().Err(err).Int64("user_id", userID).Msg("create order")
		writeServerError(w)
		return
	}

	h.publishCreated(r, order)
	writeJSON(w, http.StatusOK, order)
}

func (h *OrdersHandler) list(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserID(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "Access denied")
		return
	}

	out, err := h.Store.ListByUser(r.Context(), userID)
	if err != nil {
		h.Log.Error().Err(err).Int64("user_id", userID).Msg("list orders")
		writeServerError(w)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *OrdersHandler) get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		writeNotFound(w, "Order not found")
		return
	}

	if h.Cache != nil {
		if body, ok := h.Cache.Get(r.Context(), id); ok {
			writeRawJSON(w, http.StatusOK, body)
			return
		}
	}

	order, err := h.Store.GetByID(r.Context(), id)
	if errors.Is(err, orders.ErrNotFound) {
		writeNotFound(w, "Order not found")
		return
	}
	if err != nil {
		h.Log.Error().Err(err).Int64("order_id", id).Msg("get order")
		writeServerError(w)
		return
	}

	body, err := json.Marshal(order)
	if err != nil {
		writeServerError(w)
		return
	}
	if h.Cache != nil {
		h.Cache.Set(r.Context(), id, body)
	}
	writeRawJSON(w, http.StatusOK, body)
}

func (h *OrdersHandler) updateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		writeNotFound(w, "Order not found")
		return
	}

	var req updateOrderRequest
	if errs := decodeValid(r, &req); errs != nil {
		writeFieldErrors(w, errs)
		return
	}

	order, err := h.Store.UpdateStatus(r.Context(), id, req.Status)
	if errors.Is(err, orders.ErrNotFound) {
		writeNotFound(w, "Order not found")
		return
	}
	if err != nil {
		h.Log.Error().Err(err).Int64("order_id", id).Msg("update order status")
		writeServerError(w)
		return
	}

	if h.Cache != nil {
		h.Cache.Invalidate(r.Context(), id)
	}
	h.publishStatusChanged(r, order)
	writeJSON(w, http.StatusOK, order)
}

func (h *OrdersHandler) publishCreated(r *http.Request, order orders.OrderWithItems) {
	if h.Producer == nil {
		return
	}
	lines := make([]orders.ItemLine, 0, len(order.Items))
	for _, it := range order.Items {
		lines = append(lines, orders.ItemLine{ProductID: it.ProductID, Quantity: it.Quantity, Price: it.Price})
	}
	h.publish(r, orders.EventOrderCreated, order.ID, orders.OrderCreatedPayload{
		OrderID: order.ID,
		UserID:  order.UserID,
		Items:   lines,
	})
}

func (h *OrdersHandler) publishStatusChanged(r *http.Request, order orders.Order) {
	if h.Producer == nil {
		return
	}
	h.publish(r, orders.EventOrderStatusChanged, order.ID, orders.OrderStatusChangedPayload{
		OrderID: order.ID,
		Status:  order.Status,
	})
}

func (h *OrdersHandler) publish(r *http.Request, eventType string, orderID int64, payload any) {
	ev := orders.Envelope{
		EventID:       uuid.NewString(),
		EventType:     eventType,
		EventVersion:  1,
		OccurredAt:    time.Now().UTC(),
		Producer:      h.Service,
		TraceID:       chimw.GetReqID(r.Context()),
		CorrelationID: strconv.FormatInt(orderID, 10),
		Payload:       kafkax.MustMarshal(payload),
	}
	h.Producer.Publish(orders.PartitionKey(orderID), kafkax.MustMarshal(ev),
		kafkago.Header{Key: "x-event-type", Value: []byte(eventType)},
		kafkago.Header{Key: "x-event-version", Value: []byte("1")},
	)
}
