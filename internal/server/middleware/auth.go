// Package middleware provides HTTP middleware for authentication.
package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

// ContextKey is a typed key for context values to avoid collisions.
type ContextKey string

// accountIDKey is the context key for the authenticated account ID.
const accountIDKey ContextKey = "accountID"

// TokenValidator validates bearer tokens.
type TokenValidator interface {
	ValidateToken(tokenString string) (AccountIDGetter, error)
}

// AccountIDGetter extracts the account ID from validated token claims.
type AccountIDGetter interface {
	GetAccountID() uuid.UUID
}

// AuthMiddleware rejects requests without a valid bearer token and stores the
// token's account ID in the request context.
func AuthMiddleware(validator TokenValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r.Header.Get("Authorization"))
			if !ok {
				unauthorized(w)
				return
			}

			claims, err := validator.ValidateToken(token)
			if err != nil {
				unauthorized(w)
				return
			}

			ctx := WithAccountID(r.Context(), claims.GetAccountID())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// bearerToken parses "Bearer <token>", case-insensitive on the scheme.
func bearerToken(header string) (string, bool) {
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	return parts[1], true
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"error":"Unauthorized"}`))
}

// WithAccountID returns a context carrying accountID.
func WithAccountID(ctx context.Context, accountID uuid.UUID) context.Context {
	return context.WithValue(ctx, accountIDKey, accountID)
}

// GetAccountID extracts the authenticated account ID from the request context.
func GetAccountID(r *http.Request) (uuid.UUID, error) {
	accountID, ok := r.Context().Value(accountIDKey).(uuid.UUID)
	if !ok {
		return uuid.Nil, fmt.Errorf("account ID not found in request context")
	}
	return accountID, nil
}
