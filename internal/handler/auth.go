package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/simonkvalheim/reducer-bank/internal/auth"
	"github.com/simonkvalheim/reducer-bank/internal/model"
)

// Authenticator issues access tokens
type Authenticator interface {
	Login(ctx context.Context, password string) (*auth.Token, error)
}

// LoginRequest is the payload for POST /auth/login
type LoginRequest struct {
	Password string `json:"password"`
}

// AuthHandler handles authentication HTTP requests
type AuthHandler struct {
	authService Authenticator
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService Authenticator) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// RegisterRoutes sets up the auth routes
func (h *AuthHandler) RegisterRoutes(r chi.Router) {
	r.Post("/auth/login", h.Login)
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	token, err := h.authService.Login(r.Context(), req.Password)
	if err != nil {
		if errors.Is(err, model.ErrInvalidCredentials) {
			writeError(w, http.StatusUnauthorized, "Invalid password")
			return
		}
		writeError(w, http.StatusInternalServerError, "Login failed")
		return
	}

	writeJSON(w, http.StatusOK, token)
}
