package httpx

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/ariefcatur/go-ecommerce-api/internal/auth"
	"github.com/ariefcatur/go-ecommerce-api/internal/users"
)

type AuthHandler struct {
	Users UserStore
	Maker *auth.Maker
	Log   zerolog.Logger
}

type registerRequest struct {
	Email    string  `json:"email" validate:"required,email"`
	Password string  `json:"password" validate:"required,min=8"`
	Name     string  `json:"name" validate:"required"`
	Address  *string `json:"address"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (h *AuthHandler) Register(r chi.Router) {
	r.Post("/auth/register", h.register)
	r.Post("/auth/login", h.login)
}

func (h *AuthHandler) register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if errs := decodeValid(r, &req); errs != nil {
		writeFieldErrors(w, errs)
		return
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		h.Log.Error().Err(err).Msg("hash password")
		writeServerError(w)
		return
	}

	user, err := h.Users.Create(r.Context(), users.CreateParams{
		Email:    req.Email,
		Password: hashed,
		Role:     users.RoleUser,
		Name:     req.Name,
		Address:  req.Address,
	})
	if errors.Is(err, users.ErrEmailTaken) {
		writeFieldErrors(w, []fieldError{{
			Type:     "field",
			Value:    req.Email,
			Msg:      "email already registered",
			Path:     "email",
			Location: "body",
		}})
		return
	}
	if err != nil {
		h.Log.Error().Err(err).Msg("create user")
		writeServerError(w)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{"user": user})
}

func (h *AuthHandler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if errs := decodeValid(r, &req); errs != nil {
		writeFieldErrors(w, errs)
		return
	}

	user, err := h.Users.GetByEmail(r.Context(), req.Email)
	if errors.Is(err, users.ErrNotFound) {
		writeMessage(w, http.StatusUnauthorized, "Authentication failed")
		return
	}
	if err != nil {
		h.Log.Error().Err(err).Msg("look up user")
		writeServerError(w)
		return
	}

	if !auth.CheckPassword(req.Password, user.Password) {
		writeMessage(w, http.StatusUnauthorized, "Authentication failed")
		return
	}

	token, err := h.Maker.Create(user.ID, user.Role)
	if err != nil {
		h.Log.Error().Err(err).Msg("sign token")
		writeServerError(w)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"token": token, "user": user})
}
