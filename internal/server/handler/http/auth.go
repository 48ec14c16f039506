// Package http provides HTTP handlers for admin authentication,
// staff-identity management and file uploads.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/santi-esquerre/departamento-del-agua-api/internal/models"
	"github.com/santi-esquerre/departamento-del-agua-api/internal/service"
)

// AuthService defines the interface for authentication operations
// required by the HTTP handlers.
type AuthService interface {
	// Authenticate verifies the credentials and returns a signed access token.
	Authenticate(ctx context.Context, username, password string) (string, error)
}

// AuthHandler handles HTTP requests for admin login.
type AuthHandler struct {
	// AuthService performs the underlying authentication operations.
	AuthService AuthService
}

// Login handles POST /auth/login requests.
// It expects a JSON body with "username" and "password" and responds with
// {"access_token": ..., "token_type": "bearer"} on success. Wrong credentials
// yield 401 with a Spanish detail message, matching the public contract.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Username == "" {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	token, err := h.AuthService.Authenticate(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			writeError(w, http.StatusUnauthorized, "Credenciales inválidas")
			return
		}
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, models.TokenResponse{AccessToken: token, TokenType: "bearer"})
}
