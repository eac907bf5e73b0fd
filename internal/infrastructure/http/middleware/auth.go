package middleware

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/memberd/memberd/internal/infrastructure/auth"
)

// TokenValidator validates a bearer token and returns the actor claims.
type TokenValidator interface {
	ValidateAccessToken(tokenString string) (auth.ActorClaims, error)
}

// AuthValidator validates the JWT and sets the actor in context (see
// ActorFromContext).
type AuthValidator struct {
	validator TokenValidator
}

func NewAuthValidator(validator TokenValidator) *AuthValidator {
	return &AuthValidator{validator: validator}
}

func (m *AuthValidator) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			writeAuthErr(w, "missing or invalid authorization")
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := m.validator.ValidateAccessToken(tokenString)
		if err != nil {
			writeAuthErr(w, "invalid token")
			return
		}
		ctx := WithActor(r.Context(), Actor{
			UserID: claims.UserID,
			Email:  claims.Email,
			Name:   claims.Name,
		})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func writeAuthErr(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message, "code": "unauthorized"})
}
