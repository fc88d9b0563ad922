package httpx

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/ariefcatur/go-ecommerce-api/internal/auth"
)

type Server struct {
	Auth     *AuthHandler
	Products *ProductsHandler
	Orders   *OrdersHandler
	Maker    *auth.Maker
	Log      zerolog.Logger
}

// Router assembles the middleware stack and mounts every handler.
func (s *Server) Router() *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP)
	r.Use(RequestLogger(s.Log))
	r.Use(Recover(s.Log))
	r.Use(middleware.Timeout(15 * time.Second))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	requireAuth := RequireAuth(s.Maker)
	s.Auth.Register(r)
	s.Products.Register(r, requireAuth, RequireSeller)
	s.Orders.Register(r, requireAuth)

	return r
}
