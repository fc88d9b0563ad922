package httpx

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/ariefcatur/go-ecommerce-api/internal/catalog"
)

type ProductsHandler struct {
	Store ProductStore
	Log   zerolog.Logger
}

type createProductRequest struct {
	Name        string  `json:"name" validate:"required,max=255"`
	Description *string `json:"description" validate:"omitempty,max=1000"`
	Image       *string `json:"image" validate:"omitempty,url"`
	Price       float64 `json:"price" validate:"gte=0"`
	Quantity    int     `json:"quantity" validate:"gte=0"`
}

type updateProductRequest struct {
	Name        *string  `json:"name" validate:"omitempty,max=255"`
	Description *string  `json:"description" validate:"omitempty,max=1000"`
	Image       *string  `json:"image" validate:"omitempty,url"`
	Price       *float64 `json:"price" validate:"omitempty,gte=0"`
	Quantity    *int     `json:"quantity" validate:"omitempty,gte=0"`
}

// Register mounts read routes publicly and mutations behind auth + seller.
func (h *ProductsHandler) Register(r chi.Router, requireAuth, requireSeller func(http.Handler) http.Handler) {
	r.Route("/products", func(r chi.Router) {
		r.Get("/", h.list)
		r.Get("/{id}", h.get)
		r.Group(func(r chi.Router) {
			r.Use(requireAuth, requireSeller)
			r.Post("/", h.create)
			r.Put("/{id}", h.update)
			r.Delete("/{id}", h.delete)
		})
	})
}

func writeProductNotFound(w http.ResponseWriter, id string) {
	writeJSON(w, http.StatusNotFound, map[string]any{
		"message": "Product not found",
		"errors": []fieldError{{
			Type:     "field",
			Value:    id,
			Msg:      "Product with this ID does not exist",
			Path:     "id",
			Location: "params",
		}},
	})
}

func (h *ProductsHandler) create(w http.ResponseWriter, r *http.Request) {
	var req createProductRequest
	if errs := decodeValid(r, &req); errs != nil {
		writeFieldErrors(w, errs)
		return
	}

	product, err := h.Store.Create(r.Context(), catalog.CreateParams{
		Name:        req.Name,
		Description: req.Description,
		Image:       req.Image,
		Price:       req.Price,
		Quantity:    req.Quantity,
	})
	if err != nil {
		h.Log.Error().Err(err).Msg("create product")
		writeServerError(w)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"message": "Product created successfully!",
		"product": product,
	})
}

func (h *ProductsHandler) list(w http.ResponseWriter, r *http.Request) {
	products, err := h.Store.List(r.Context())
	if err != nil {
		h.Log.Error().Err(err).Msg("list products")
		writeServerError(w)
		return
	}
	writeJSON(w, http.StatusOK, products)
}

func (h *ProductsHandler) get(w http.ResponseWriter, r *http.Request) {
	idParam := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(idParam, 10, 64)
	if err != nil || id <= 0 {
		writeProductNotFound(w, idParam)
		return
	}

	product, err := h.Store.GetByID(r.Context(), id)
	if errors.Is(err, catalog.ErrNotFound) {
		writeProductNotFound(w, idParam)
		return
	}
	if err != nil {
		h.Log.Error().Err(err).Msg("get product")
		writeServerError(w)
		return
	}
	writeJSON(w, http.StatusOK, product)
}

func (h *ProductsHandler) update(w http.ResponseWriter, r *http.Request) {
	idParam := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(idParam, 10, 64)
	if err != nil || id <= 0 {
		writeProductNotFound(w, idParam)
		return
	}

	var req updateProductRequest
	if errs := decodeValid(r, &req); errs != nil {
		writeFieldErrors(w, errs)
		return
	}

	product, err := h.Store.Update(r.Context(), id, catalog.UpdateParams{
		Name:        req.Name,
		Description: req.Description,
		Image:       req.Image,
		Price:       req.Price,
		Quantity:    req.Quantity,
	})
	if errors.Is(err, catalog.ErrNotFound) {
		writeProductNotFound(w, idParam)
		return
	}
	if err != nil {
		h.Log.Error().Err(err).Msg("update product")
		writeServerError(w)
		return
	}
	writeJSON(w, http.StatusOK, product)
}

func (h *ProductsHandler) delete(w http.ResponseWriter, r *http.Request) {
	idParam := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(idParam, 10, 64)
	if err != nil || id <= 0 {
		writeProductNotFound(w, idParam)
		return
	}

	product, err := h.Store.Delete(r.Context(), id)
	if errors.Is(err, catalog.ErrNotFound) {
		writeProductNotFound(w, idParam)
		return
	}
	if err != nil {
		h.Log.Error().Err(err).Msg("delete product")
		writeServerError(w)
		return
	}
	writeJSON(w, http.StatusOK, product)
}
