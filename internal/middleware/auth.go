package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/simonkvalheim/reducer-bank/internal/auth"
)

// ContextKey is the type for context keys to avoid collisions
type ContextKey string

// SubjectKey is the context key for the authenticated token subject
const SubjectKey ContextKey = "subject"

// TokenValidator checks a bearer token
type TokenValidator interface {
	ValidateToken(tokenString string) (*auth.Claims, error)
}

// AuthMiddleware validates JWT tokens and adds the subject to the context
type AuthMiddleware struct {
	validator TokenValidator
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(validator TokenValidator) *AuthMiddleware {
	return &AuthMiddleware{validator: validator}
}

// RequireAuth is middleware that requires a valid access token
func (m *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			writeUnauthorized(w, "Missing authorization header")
			return
		}

		// Expected format: "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			writeUnauthorized(w, "Invalid authorization header format")
			return
		}

		claims, err := m.validator.ValidateToken(parts[1])
		if err != nil {
			writeUnauthorized(w, "Invalid or expired token")
			return
		}

		ctx := context.WithValue(r.Context(), SubjectKey, claims.Subject)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetSubject extracts the token subject from the request context.
// Returns "" if the request was not authenticated.
func GetSubject(ctx context.Context) string {
	subject, ok := ctx.Value(SubjectKey).(string)
	if !ok {
		return ""
	}
	return subject
}

func writeUnauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
