// Package identity resolves the calling account from a bearer token.
// The marketplace trusts an external identity provider to issue the
// tokens; this package only verifies them and exposes the account id.
package identity

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/emberhall/bazaar/internal/domain"
)

type ctxKey string

const accountIDKey ctxKey = "accountID"

// WithAccountID returns a context carrying the verified caller account id
func WithAccountID(ctx context.Context, accountID string) context.Context {
	return context.WithValue(ctx, accountIDKey, accountID)
}

// FromContext extracts the verified caller account id from the context
func FromContext(ctx context.Context) (string, bool) {
	v := ctx.Value(accountIDKey)
	if v == nil {
		return "", false
	}
	if id, ok := v.(string); ok && id != "" {
		return id, true
	}
	return "", false
}

// CallerFromContext returns the caller account id or ErrUnauthenticated
func CallerFromContext(ctx context.Context) (string, error) {
	id, ok := FromContext(ctx)
	if !ok {
		return "", domain.ErrUnauthenticated
	}
	return id, nil
}

// Middleware verifies the Authorization bearer token and stores the caller
// account id in the request context.
func Middleware(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				http.Error(w, "Authorization header required", http.StatusUnauthorized)
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				http.Error(w, "Invalid authorization header format", http.StatusUnauthorized)
				return
			}

			accountID, err := validateToken(parts[1], secret)
			if err != nil {
				http.Error(w, "Invalid token", http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithAccountID(r.Context(), accountID)))
		})
	}
}

func validateToken(tokenString, secret string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return "", err
	}
	if !token.Valid {
		return "", domain.ErrUnauthenticated
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", domain.ErrUnauthenticated
	}

	accountID, ok := claims["account_id"].(string)
	if !ok || accountID == "" {
		return "", fmt.Errorf("%w: token missing account_id claim", domain.ErrUnauthenticated)
	}
	return accountID, nil
}
